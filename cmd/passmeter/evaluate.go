package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/5w1tchy/password-meter/internal/report"
	"github.com/5w1tchy/password-meter/internal/security/password"
)

var errMissing = errors.New(report.MsgMissing)

func newEvaluateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "evaluate [password]",
		Short: "Score a password and list what would make it stronger",
		Long: `Score a password from 0 to 6 and print its strength with suggestions.
Without an argument the password is read from a hidden prompt, or from the
first line of stdin when stdin is not a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pwd string
			if len(args) == 1 {
				pwd = args[0]
			} else {
				var err error
				if pwd, err = readPassword(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
					return err
				}
			}
			if pwd == "" {
				return errMissing
			}

			res := password.Evaluate(pwd)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report.NewEvaluation(res))
			}
			return report.WriteText(out, res)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

// readPassword prompts without echo on a terminal and falls back to one line otherwise.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
