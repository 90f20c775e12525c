// Command dcalg exposes the DC-net algebra on the command line.
//
// # Commands
//
// fp: Field arithmetic modulo 2^127 - 1 on canonical decimal operands.
//
//	dcalg fp mul 14766549069271113692204649107775507741 153613967287097206589234951623852979690
//	dcalg fp neg 5
//
// xor: XOR-combine equal-length hex payloads.
//
//	dcalg xor 12345678 9abcdef0
//
// pad: Derive the combined pad of a set of shared secrets for a round.
//
//	dcalg pad --config=pad.yaml
//	dcalg pad --secret=0102 --secret=0304 --round=7 --length=64
//
// rand: Print random field elements drawn from crypto/rand.
//
//	dcalg rand --n=4
//
// # Configuration File
//
//	log:
//	  level: info
//	  json: false
//	pad:
//	  round: 7
//	  length: 4
//	  field: true
//	  shared_secrets: ["0102", "0304"]
//	  values: [12, 34, 56, 78]
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/flashbots/dcnet/cmd/common"
	"github.com/flashbots/dcnet/crypto"
	"lukechampine.com/uint128"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid usage")

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stdout)
		return errUsage
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "fp":
		return runFp(args, stdout)
	case "xor":
		return runXor(args, stdout)
	case "pad":
		return runPad(args, stdout, stderr)
	case "rand":
		return runRand(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stdout)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `dcalg - DC-net algebra tools

Usage:
  dcalg <command> [options]

Commands:
  fp        Field arithmetic: add, sub, mul, neg, pow, inv
  xor       XOR-combine hex payloads
  pad       Derive pads from shared secrets
  rand      Print random field elements`)
}

// --- fp Command ---

func runFp(args []string, w io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: dcalg fp <add|sub|mul|neg|pow|inv> <a> [b]: %w", errUsage)
	}

	op := args[0]
	var a crypto.Fp
	if err := a.UnmarshalText([]byte(args[1])); err != nil {
		return fmt.Errorf("operand a: %w", err)
	}

	var res crypto.Fp
	switch op {
	case "neg":
		res = a.Neg()
	case "inv":
		inv, err := a.Inv()
		if err != nil {
			return err
		}
		res = inv
	case "pow":
		if len(args) != 3 {
			return fmt.Errorf("pow takes an exponent: %w", errUsage)
		}
		e, err := uint128.FromString(args[2])
		if err != nil {
			return fmt.Errorf("exponent: %w", err)
		}
		res = a.Pow(e)
	case "add", "sub", "mul":
		if len(args) != 3 {
			return fmt.Errorf("%s takes two operands: %w", op, errUsage)
		}
		var b crypto.Fp
		if err := b.UnmarshalText([]byte(args[2])); err != nil {
			return fmt.Errorf("operand b: %w", err)
		}
		switch op {
		case "add":
			res = a.Add(b)
		case "sub":
			res = a.Sub(b)
		case "mul":
			res = a.Mul(b)
		}
	default:
		return fmt.Errorf("unknown fp operation: %s", op)
	}

	fmt.Fprintln(w, res)
	return nil
}

// --- xor Command ---

func runXor(args []string, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dcalg xor <hex> [hex...]: %w", errUsage)
	}

	msgs := make([]crypto.Message, 0, len(args))
	for i, arg := range args {
		data, err := hex.DecodeString(arg)
		if err != nil {
			return fmt.Errorf("payload %d: %w", i, err)
		}
		if i > 0 && len(data) != msgs[0].Len() {
			return fmt.Errorf("payload %d has %d bytes, want %d", i, len(data), msgs[0].Len())
		}
		msgs = append(msgs, crypto.NewMessage(data))
	}

	res := crypto.Sum(crypto.NewZeroMessage(msgs[0].Len()), msgs...)
	fmt.Fprintln(w, hex.EncodeToString(crypto.MessageBytes(res)))
	return nil
}

// --- pad Command ---

type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func runPad(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "Path to YAML config file")
		round      uint32
		length     = fs.Int("length", 0, "Pad length (bytes, or elements with --field)")
		field      = fs.Bool("field", false, "Derive field masks instead of XOR bytes")
		logLevel   = fs.String("log-level", "", "Log level: debug, info, warn, error")
		secrets    stringList
	)
	fs.Var(&secrets, "secret", "Hex-encoded shared secret (repeatable)")
	fs.Func("round", "Round number (uint32)", func(v string) error {
		r, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return err
		}
		round = uint32(r)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := common.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = common.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}

	// Command-line flags override config file
	isFlagSet := func(name string) bool {
		found := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == name {
				found = true
			}
		})
		return found
	}
	if isFlagSet("round") {
		cfg.Pad.Round = round
	}
	if isFlagSet("length") {
		cfg.Pad.Length = *length
	}
	if *field {
		cfg.Pad.Field = true
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if len(secrets) > 0 {
		cfg.Pad.SharedSecrets = secrets
	}

	log, err := common.NewLogger(stderr, cfg.Log)
	if err != nil {
		return err
	}

	if cfg.Pad.Length < 0 {
		return fmt.Errorf("pad length must be >= 0, got %d", cfg.Pad.Length)
	}
	sharedSecrets, err := common.ParseSharedSecrets(cfg.Pad.SharedSecrets)
	if err != nil {
		return err
	}

	log.Debug("Deriving pad", "round", cfg.Pad.Round, "length", cfg.Pad.Length, "field", cfg.Pad.Field, "secrets", len(sharedSecrets))

	if !cfg.Pad.Field {
		pad, err := crypto.DeriveXorBlindingVector(sharedSecrets, cfg.Pad.Round, cfg.Pad.Length)
		if err != nil {
			return fmt.Errorf("derive pad: %w", err)
		}
		fmt.Fprintln(stdout, hex.EncodeToString(pad))
		return nil
	}

	if len(cfg.Pad.Values) > 0 && len(cfg.Pad.Values) != cfg.Pad.Length {
		log.Info("Adjusting mask length to value count", "length", cfg.Pad.Length, "values", len(cfg.Pad.Values))
		cfg.Pad.Length = len(cfg.Pad.Values)
	}

	masks, err := crypto.DeriveBlindingVector(sharedSecrets, cfg.Pad.Round, cfg.Pad.Length)
	if err != nil {
		return fmt.Errorf("derive masks: %w", err)
	}
	if len(cfg.Pad.Values) > 0 {
		crypto.AddVectorsInplace(masks, cfg.Pad.Values)
		log.Debug("Blinded values", "count", len(masks))
	}
	for _, m := range masks {
		fmt.Fprintln(stdout, m)
	}
	return nil
}

// --- rand Command ---

func runRand(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("rand", flag.ContinueOnError)
	n := fs.Int("n", 1, "Number of field elements")
	uniform := fs.Bool("uniform", false, "Use rejection sampling instead of top-bit discard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src := crypto.NewCryptoSource()
	for i := 0; i < *n; i++ {
		var a crypto.Fp
		if *uniform {
			a = crypto.FpRandomRejection(src)
		} else {
			a.Randomize(src)
		}
		fmt.Fprintln(w, a)
	}
	return nil
}
