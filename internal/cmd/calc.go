package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"imc/internal/activitylog"
	"imc/internal/bmi"
	"imc/internal/config"
)

var errMissingArgument = errors.New("missing JSON argument")

// Stdin detection, replaced in tests.
var (
	// stdinIsTerminal reports whether r is an interactive terminal.
	stdinIsTerminal = func(r io.Reader) bool {
		f, ok := r.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}

	// stdinIsRegularFile reports whether r is a redirected file, which
	// always reaches EOF. Pipes and devices may stay open indefinitely.
	stdinIsRegularFile = func(r io.Reader) bool {
		f, ok := r.(*os.File)
		if !ok {
			return false
		}
		info, err := f.Stat()
		return err == nil && info.Mode().IsRegular()
	}
)

const stdinHint = "reading JSON from stdin, end with Ctrl-D\n"

type calcOptions struct {
	format     string
	configPath string
	version    bool
}

func (o *calcOptions) validate() error {
	if err := config.ValidateFormat(o.format); err != nil {
		return fmt.Errorf("invalid --format: %w", err)
	}
	return nil
}

// runCalc computes one record and prints it. Every failure after flag
// parsing, including a bad config file, becomes an error record on stdout;
// only a failed write to stdout is returned.
func runCalc(cmd *cobra.Command, args []string, opts *calcOptions) error {
	w := cmd.OutOrStdout()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		format := opts.format
		if format == "" {
			format = config.FormatJSON
		}
		return render(w, format, config.ResultKeyBMI, bmi.Failure(fmt.Errorf("load config: %w", err)))
	}
	format := cfg.Format
	if opts.format != "" {
		format = opts.format
	}

	var out bmi.Output
	input, err := readInput(cmd.InOrStdin(), cmd.ErrOrStderr(), args)
	if err != nil {
		out = bmi.Failure(err)
	} else {
		out = bmi.Run(input)
	}

	log := activitylog.Nop()
	if cfg.ActivityLog.Enabled {
		log = activitylog.New(true, cfg.ActivityLog.Path, resolveActor())
	}
	log.Calculation(string(input), out)
	log.Close()

	return render(w, format, cfg.ResultKey, out)
}

// readInput returns the JSON document from the first argument. With "-"
// it reads stdin until EOF, printing a hint to stderr when stdin is a
// terminal. With no argument, stdin is read only when it is a redirected
// regular file; a pipe is never read implicitly because a caller may leave
// it open. Arguments after the first are ignored.
func readInput(stdin io.Reader, stderr io.Writer, args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		return []byte(args[0]), nil
	}
	if len(args) == 0 && !stdinIsRegularFile(stdin) {
		return nil, errMissingArgument
	}
	if len(args) > 0 && stdinIsTerminal(stdin) {
		fmt.Fprint(stderr, stdinHint)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(args) == 0 && len(bytes.TrimSpace(data)) == 0 {
		return nil, errMissingArgument
	}
	return data, nil
}
