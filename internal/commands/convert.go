package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtconv/internal/convert"
)

// convertFlags must all be given; they are checked in RunE so a missing one
// is reported with the usage text like every other rejected invocation.
var convertFlags = []string{"input", "output", "in_format", "out_format"}

func newConvertCommand(a *app) *cobra.Command {
	var input, output, inFormat, outFormat string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a statement file to another format",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkRequired(cmd, convertFlags); err != nil {
				return usageError(cmd, err)
			}
			from, err := convert.ParseFormat(inFormat)
			if err != nil {
				return usageError(cmd, fmt.Errorf("--in_format: %w", err))
			}
			to, err := convert.ParseFormat(outFormat)
			if err != nil {
				return usageError(cmd, fmt.Errorf("--out_format: %w", err))
			}

			loc, err := a.cfg.Location()
			if err != nil {
				return err
			}
			conv, err := convert.NewConverter(from, to, convert.Options{
				Logger:         a.log,
				StrictBalances: a.cfg.MT940.StrictBalances,
				Now:            func() time.Time { return time.Now().In(loc) },
			})
			if err != nil {
				return usageError(cmd, err)
			}
			if err := checkInput(input); err != nil {
				return usageError(cmd, err)
			}

			if err := runConvert(cmd, conv, input, output); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Conversion succeeded")
			return nil
		},
	}
	cmd.SetFlagErrorFunc(usageError)

	cmd.Flags().StringVarP(&input, "input", "i", "", "input statement file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output statement file (required)")
	cmd.Flags().StringVar(&inFormat, "in_format", "", "input format: CSV, XML, MT940 or CAMT053 (required)")
	cmd.Flags().StringVar(&outFormat, "out_format", "", "output format: CSV, XML, MT940 or CAMT053 (required)")

	return cmd
}

// usageError prints the command's usage before returning err. The root
// command silences usage for runtime failures.
func usageError(cmd *cobra.Command, err error) error {
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return err
}

func checkRequired(cmd *cobra.Command, names []string) error {
	var missing []string
	for _, name := range names {
		if f := cmd.Flags().Lookup(name); f == nil || f.Value.String() == "" {
			missing = append(missing, strconv.Quote(name))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
	}
	return nil
}

func checkInput(input string) error {
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input file: %s is a directory", input)
	}
	return nil
}

// runConvert opens input before creating output so an unreadable input
// never leaves an empty output file behind. A failed conversion removes
// output.
func runConvert(cmd *cobra.Command, conv *convert.Converter, input, output string) (err error) {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(output)
		}
	}()

	w := bufio.NewWriter(out)
	if err := conv.Convert(cmd.Context(), bufio.NewReader(in), w); err != nil {
		return fmt.Errorf("converting %s: %w", input, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}
