package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"

	"github.com/chronal-vm/chronal/chronal/device"
)

type WitnessOutput struct {
	Witness   hexutil.Bytes `json:"witness"`
	StateHash common.Hash   `json:"stateHash"`
}

func Witness(ctx *cli.Context) error {
	input := ctx.Path(WitnessInputFlag.Name)
	output := ctx.Path(WitnessOutputFlag.Name)
	snap, err := jsonutil.LoadJSON[device.Snapshot](input)
	if err != nil {
		return fmt.Errorf("invalid input snapshot (%v): %w", input, err)
	}
	witnessOutput := &WitnessOutput{
		Witness:   snap.EncodeWitness(),
		StateHash: snap.Hash(),
	}
	if err := jsonutil.WriteJSON(output, witnessOutput, OutFilePerm); err != nil {
		return fmt.Errorf("failed to write witness output: %w", err)
	}
	_, _ = fmt.Fprintln(ctx.App.Writer, witnessOutput.StateHash.Hex())
	return nil
}

var WitnessCommand = &cli.Command{
	Name:        "witness",
	Usage:       "Convert a JSON snapshot into a binary witness",
	Description: "Convert a JSON snapshot into a binary witness. The state hash is written to stdout",
	Action:      Witness,
	Flags: []cli.Flag{
		WitnessInputFlag,
		WitnessOutputFlag,
	},
}
