// evmrun is a minimal command-line front-end over engine.Execute, in
// the teacher's cmd/ convention of a thin urfave/cli/v2 wrapper around
// the package that does the real work. It takes a call (or, with an
// empty --to, a contract creation) and prints the resulting state
// diff as JSON.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/engine"
	"github.com/cancunvm/engine/kvstore"
	"github.com/cancunvm/engine/log"
	"github.com/cancunvm/engine/state"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

var (
	senderFlag = &cli.StringFlag{Name: "sender", Usage: "account the call originates from", Value: "0x0000000000000000000000000000000000000001"}
	toFlag     = &cli.StringFlag{Name: "to", Usage: "recipient account; empty or the zero address means contract creation"}
	valueFlag  = &cli.StringFlag{Name: "value", Usage: "wei value sent with the call", Value: "0"}
	dataFlag   = &cli.StringFlag{Name: "data", Usage: "hex-encoded calldata"}
	codeFlag   = &cli.StringFlag{Name: "code", Usage: "hex-encoded code to run (or initcode, for a creation)"}
	dbFlag     = &cli.StringFlag{Name: "db", Usage: "path to a LevelDB directory; omitted means an ephemeral in-memory store"}

	blockNumberFlag  = &cli.Uint64Flag{Name: "block.number", Value: 1}
	blockTimeFlag    = &cli.Uint64Flag{Name: "block.timestamp", Value: 0}
	coinbaseFlag     = &cli.StringFlag{Name: "block.coinbase", Value: "0x0000000000000000000000000000000000000000"}
	baseFeeFlag      = &cli.StringFlag{Name: "block.basefee", Value: "0"}
	chainIDFlag      = &cli.StringFlag{Name: "block.chainid", Value: "1"}
	gasLimitFlag     = &cli.Uint64Flag{Name: "block.gaslimit", Value: 30_000_000}
	prevRandaoFlag   = &cli.StringFlag{Name: "block.prevrandao", Value: "0x0"}
	blobBaseFeeFlag  = &cli.StringFlag{Name: "block.blobbasefee", Value: "0"}
	verbosityFlag    = &cli.StringFlag{Name: "verbosity", Value: "info", Usage: "trace|debug|info|warn|error"}
)

func main() {
	app := &cli.App{
		Name:  "evmrun",
		Usage: "run a single call or contract creation against a fresh or on-disk state",
		Flags: []cli.Flag{
			senderFlag, toFlag, valueFlag, dataFlag, codeFlag, dbFlag,
			blockNumberFlag, blockTimeFlag, coinbaseFlag, baseFeeFlag,
			chainIDFlag, gasLimitFlag, prevRandaoFlag, blobBaseFeeFlag,
			verbosityFlag,
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	setupLogging(ctx.String(verbosityFlag.Name))

	backend, err := openBackend(ctx.String(dbFlag.Name))
	if err != nil {
		return fmt.Errorf("evmrun: opening backend: %w", err)
	}
	defer backend.Close()

	blockCtx, err := blockContextFromFlags(ctx)
	if err != nil {
		return fmt.Errorf("evmrun: block context: %w", err)
	}

	sender := common.HexToAddress(ctx.String(senderFlag.Name))
	to := common.HexToAddress(ctx.String(toFlag.Name))
	value, err := parseUint256(ctx.String(valueFlag.Name))
	if err != nil {
		return fmt.Errorf("evmrun: value: %w", err)
	}
	data, err := parseHexBytes(ctx.String(dataFlag.Name))
	if err != nil {
		return fmt.Errorf("evmrun: data: %w", err)
	}
	code, err := parseHexBytes(ctx.String(codeFlag.Name))
	if err != nil {
		return fmt.Errorf("evmrun: code: %w", err)
	}

	st := state.New(backend, blockCtx)
	res := engine.Execute(st, sender, to, value, data, code)

	if res.Success {
		if err := st.Accounts.Persist(); err != nil {
			return fmt.Errorf("evmrun: persisting state: %w", err)
		}
	}

	out, err := json.MarshalIndent(toJSONResult(res), "", "  ")
	if err != nil {
		return fmt.Errorf("evmrun: encoding result: %w", err)
	}
	fmt.Println(string(out))
	if !res.Success {
		return cli.Exit("", 1)
	}
	return nil
}

// jsonResult mirrors engine.Result with an encoding/json-friendly Err
// field, since error doesn't marshal on its own.
type jsonResult struct {
	Success bool                           `json:"success"`
	Output  string                         `json:"output"`
	Logs    []state.Log                    `json:"logs"`
	Diff    map[string]*engine.AccountDiff `json:"diff"`
	Error   string                         `json:"error,omitempty"`
}

func toJSONResult(res engine.Result) jsonResult {
	j := jsonResult{
		Success: res.Success,
		Output:  "0x" + hex.EncodeToString(res.Output),
		Logs:    res.Logs,
		Diff:    make(map[string]*engine.AccountDiff, len(res.Diff)),
	}
	if res.Err != nil {
		j.Error = res.Err.Error()
	}
	for addr, d := range res.Diff {
		j.Diff[addr.Hex()] = d
	}
	return j
}

func setupLogging(verbosity string) {
	var lvl = log.LevelInfo
	switch strings.ToLower(verbosity) {
	case "trace":
		lvl = log.LevelTrace
	case "debug":
		lvl = log.LevelDebug
	case "warn":
		lvl = log.LevelWarn
	case "error":
		lvl = log.LevelError
	}
	log.SetDefault(log.NewLogger(log.TerminalHandler(os.Stderr, lvl)))
}

func openBackend(path string) (kvstore.Database, error) {
	if path == "" {
		return kvstore.NewMemoryDB(), nil
	}
	return kvstore.OpenLevelDB(path)
}

func blockContextFromFlags(ctx *cli.Context) (*state.BlockContext, error) {
	baseFee, ok := new(big.Int).SetString(strings.TrimPrefix(ctx.String(baseFeeFlag.Name), "0x"), 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s", baseFeeFlag.Name)
	}
	chainID, ok := new(big.Int).SetString(strings.TrimPrefix(ctx.String(chainIDFlag.Name), "0x"), 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s", chainIDFlag.Name)
	}
	blobBaseFee, ok := new(big.Int).SetString(strings.TrimPrefix(ctx.String(blobBaseFeeFlag.Name), "0x"), 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s", blobBaseFeeFlag.Name)
	}
	return &state.BlockContext{
		Number:      ctx.Uint64(blockNumberFlag.Name),
		Timestamp:   ctx.Uint64(blockTimeFlag.Name),
		Coinbase:    common.HexToAddress(ctx.String(coinbaseFlag.Name)),
		BaseFee:     baseFee,
		ChainID:     chainID,
		GasLimit:    ctx.Uint64(gasLimitFlag.Name),
		PrevRandao:  common.BytesToHash(mustHex(ctx.String(prevRandaoFlag.Name))),
		BlobBaseFee: blobBaseFee,
	}, nil
}

func parseUint256(s string) (*uint256.Int, error) {
	b, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 10)
	if !ok {
		b, ok = new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
	}
	v := new(uint256.Int)
	if overflow := v.SetFromBig(b); overflow {
		return nil, fmt.Errorf("value %q overflows 256 bits", s)
	}
	return v, nil
}

func parseHexBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

func mustHex(s string) []byte {
	b, _ := parseHexBytes(s)
	return b
}
