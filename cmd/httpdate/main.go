package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"datehdr/httpdate"
)

const usage = `Usage:
	%[1]s format <unix-seconds>   print the IMF-fixdate for a timestamp
	%[1]s parse <http-date>       print the timestamp of an HTTP-date
	%[1]s now                     print the current time as an IMF-fixdate
`

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, os.Args[0])
	}
	flag.Parse()

	if err := run(os.Stdout, flag.Args(), time.Now); err != nil {
		logrus.WithError(err).WithField("args", flag.Args()).Error("httpdate failed")
		os.Exit(1)
	}
}

func run(w io.Writer, args []string, now func() time.Time) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command")
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "format":
		if len(rest) != 1 {
			return fmt.Errorf("format takes exactly one timestamp")
		}
		ts, err := strconv.ParseUint(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", rest[0], err)
		}
		b, err := httpdate.AppendFormat(nil, ts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err

	case "parse":
		if len(rest) == 0 {
			return fmt.Errorf("parse takes an HTTP-date")
		}
		// Unquoted dates arrive split on spaces.
		ts, err := httpdate.ParseString(strings.Join(rest, " "))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, ts)
		return err

	case "now":
		s, err := httpdate.FormatTime(now())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	}
	return fmt.Errorf("unknown command %q", args[0])
}
