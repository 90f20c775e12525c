// Package cmd provides CLI commands for the DC-net algebra.
//
// # Commands
//
// dcalg: Field arithmetic, XOR combination, pad derivation and random
// sampling on the command line.
//
//	go run ./cmd/dcalg fp mul 4 3
//	go run ./cmd/dcalg xor 12345678 9abcdef0
//	go run ./cmd/dcalg pad --secret=0102 --round=7 --length=64
//	go run ./cmd/dcalg pad --config=pad.yaml
//
// # Configuration
//
// Commands support YAML configuration files via the --config flag.
// Command-line flags override config file values.
//
//	log:
//	  level: "debug"
//	  json: false
//	pad:
//	  round: 7
//	  length: 4
//	  field: true
//	  shared_secrets: ["0102", "0304"]
//	  values: [12, 34, 56, 78]
package cmd
