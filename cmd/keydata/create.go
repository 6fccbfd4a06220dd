package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/wippyai/keydata/config"
	"github.com/wippyai/keydata/errors"
	"github.com/wippyai/keydata/hexdump"
)

type createOptions struct {
	spec       string
	integrity  string
	output     string
	access     []string
	keyID      uint32
	validUntil uint32
	binary     bool
	annotate   bool
	verbose    bool
}

func runCreate(args []string, stdout io.Writer) error {
	var opts createOptions

	fs := pflag.NewFlagSet("create", pflag.ContinueOnError)
	fs.StringVar(&opts.spec, "spec", "", "key description file (.yaml, .toml, .json, .jsonc)")
	fs.Uint32Var(&opts.keyID, "key-id", 0, "key identifier (overrides --spec)")
	fs.Uint32Var(&opts.validUntil, "valid-until", 0, "expiry in epoch seconds, 0 for none (overrides --spec)")
	fs.StringArrayVar(&opts.access, "access", nil, `access group "ap[,ap...][@override]", repeatable`)
	fs.StringVar(&opts.integrity, "integrity", "", "trailing integrity algorithm: none, crc16, xxhash, blake3")
	fs.StringVarP(&opts.output, "output", "o", "", "write the record to a file instead of stdout")
	fs.BoolVar(&opts.binary, "binary", false, "write raw bytes to --output instead of hex")
	fs.BoolVar(&opts.annotate, "annotate", false, "print one line per section")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log every emitted section")
	fs.SetOutput(stdout)

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "parse flags")
	}
	if fs.NArg() > 0 {
		return errors.InvalidInput(errors.PhaseCLI, "unexpected argument: "+fs.Arg(0))
	}

	logger, err := setupLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	key, err := keyFromFlags(fs, &opts)
	if err != nil {
		return err
	}

	b, err := key.Block()
	if err != nil {
		return fmt.Errorf("build key data: %w", err)
	}
	data, err := b.Bytes()
	if err != nil {
		return fmt.Errorf("serialize key data: %w", err)
	}

	if opts.output != "" {
		out := data
		if !opts.binary {
			out = []byte(hexdump.Format(data) + "\n")
		}
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		return nil
	}

	if opts.annotate {
		layout, err := b.Layout()
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, hexdump.Render(data, layout, hexdump.Options{Styled: isTerminal(stdout), Instructions: true}))
		return nil
	}

	fmt.Fprintf(stdout, "key_data: %s\n", hexdump.Format(data))
	fmt.Fprintf(stdout, "size: %d\n", len(data))
	return nil
}

// keyFromFlags loads --spec, if any, and applies the flags set on the
// command line on top of it.
func keyFromFlags(fs *pflag.FlagSet, opts *createOptions) (*config.Key, error) {
	key := &config.Key{}
	if opts.spec != "" {
		loaded, err := config.Load(opts.spec)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", opts.spec, err)
		}
		key = loaded
	} else if !fs.Changed("key-id") {
		return nil, errors.InvalidInput(errors.PhaseCLI, "either --spec or --key-id is required")
	}

	if fs.Changed("key-id") {
		key.ID = opts.keyID
	}
	if fs.Changed("valid-until") {
		v := opts.validUntil
		key.ValidUntil = &v
		key.ExpiresAt = nil
	}
	if fs.Changed("integrity") {
		key.Integrity = opts.integrity
	}
	for _, s := range opts.access {
		group, err := config.ParseAccess(s)
		if err != nil {
			return nil, err
		}
		key.Access = append(key.Access, group)
	}
	return key, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
