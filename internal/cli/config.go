package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"github.com/arloliu/lzw/format"
)

// ErrUsage is returned by ParseArgs when the command line cannot be run.
var ErrUsage = errors.New("invalid usage")

// Mode selects the direction of a run.
type Mode uint8

const (
	ModeCompress Mode = iota + 1
	ModeDecompress
)

func (m Mode) String() string {
	switch m {
	case ModeCompress:
		return "compress"
	case ModeDecompress:
		return "uncompress"
	default:
		return "unknown"
	}
}

// Config holds the parsed command line.
type Config struct {
	Recursive bool // descend into directories
	Verbose   bool // print one line per handled file
	Timings   bool // append the elapsed time to verbose lines
	Keep      bool // keep the input file
	Force     bool // see the usage text of each mode
	Debug     bool // enable the tagged debug log
	Stdout    bool // write the result to standard output
	Verify    bool // decode the fresh .Z file and compare digests before committing

	Jobs    int // files handled in parallel
	MaxBits int
	Policy  format.ResetPolicy

	Files []string
}

const usageHeader = `usage: %s [options] <file|dir>...

Options must come before the file list.

`

// ParseArgs parses args (without the program name). Usage and parse errors are
// written to stderr and reported as ErrUsage.
func ParseArgs(mode Mode, args []string, stderr io.Writer) (Config, error) {
	var cfg Config
	var policy string

	fs := flag.NewFlagSet(mode.String(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, usageHeader, mode)
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.Recursive, "r", false, "recurse into directories")
	fs.BoolVar(&cfg.Verbose, "v", false, "print what happens to each file")
	fs.BoolVar(&cfg.Timings, "t", false, "print the time taken for each file (with -v)")
	fs.BoolVar(&cfg.Keep, "k", false, "keep the input files")
	fs.BoolVar(&cfg.Debug, "d", false, "print debug log to stderr")
	fs.BoolVar(&cfg.Stdout, "c", false, "write to standard output, keep the input files")
	fs.IntVar(&cfg.Jobs, "j", 1, "number of files handled in parallel (0 = one per CPU)")

	switch mode {
	case ModeCompress:
		fs.BoolVar(&cfg.Force, "f", false, "keep the .Z file even when it is not smaller; compress .Z files too")
		fs.BoolVar(&cfg.Verify, "V", false, "verify every .Z file before replacing the input (not with -c)")
		fs.IntVar(&cfg.MaxBits, "b", format.DefaultMaxBits, "maximum code width in bits (9-16)")
		fs.StringVar(&policy, "p", "reset", "full dictionary policy: reset, freeze or adaptive")
	case ModeDecompress:
		fs.BoolVar(&cfg.Force, "f", false, "decompress files without the .Z suffix in place")
	default:
		return Config{}, fmt.Errorf("%w: unknown mode %d", ErrUsage, mode)
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	cfg.Files = fs.Args()
	if len(cfg.Files) == 0 {
		fs.Usage()
		return Config{}, fmt.Errorf("%w: no files given", ErrUsage)
	}

	if mode == ModeCompress {
		p, ok := format.ParseResetPolicy(policy)
		if !ok {
			return Config{}, fmt.Errorf("%w: unknown policy %q", ErrUsage, policy)
		}
		cfg.Policy = p

		if cfg.MaxBits < format.MinCodeBits || cfg.MaxBits > format.MaxCodeBits {
			return Config{}, fmt.Errorf("%w: max bits %d out of range %d-%d",
				ErrUsage, cfg.MaxBits, format.MinCodeBits, format.MaxCodeBits)
		}
	}

	if cfg.Jobs < 0 {
		return Config{}, fmt.Errorf("%w: negative job count %d", ErrUsage, cfg.Jobs)
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.NumCPU()
	}
	// Verification reads back the committed file, and -c never writes one.
	if cfg.Stdout && cfg.Verify {
		return Config{}, fmt.Errorf("%w: -V cannot be combined with -c", ErrUsage)
	}
	// Results on stdout must not interleave.
	if cfg.Stdout {
		cfg.Jobs = 1
		cfg.Keep = true
	}

	return cfg, nil
}
