// Command csv2sheet converts a CSV file into the XML of a single
// spreadsheetml worksheet.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/adnsv/go-xlsheet/xl"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("csv2sheet", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagEnc := fs.String("charset", EncName, "csv charset name")
	flagOut := fs.String("o", "", "output file (default stdout); a .zip name gets the worksheet as a package part")
	flagDir := fs.String("dir", "", "write the worksheet part below this directory instead")
	flagSheet := fs.String("sheet", "sheet1", "worksheet name")
	flagFormatID := fs.Int("format-id", 1, "style id referenced by date-time cells")
	flagPretty := fs.Bool("pretty", false, "indent the XML")
	flagRefs := fs.Bool("refs", false, "write A1 references on cells")
	flagDateLayout := fs.String("date-layout", "", "time layout of date-time cells (e.g. 2006-01-02)")

	app := ffcli.Command{Name: "csv2sheet", ShortUsage: "csv2sheet [flags] [input.csv]", FlagSet: fs,
		Options: []ff.Option{ff.WithEnvVarPrefix("CSV2SHEET")},
		Exec: func(ctx context.Context, args []string) error {
			fn := "-"
			if len(args) != 0 {
				fn = args[0]
			}
			cr, err := openCsv(fn, *flagEnc)
			if err != nil {
				return err
			}
			defer cr.Close()

			ws := xl.NewWorksheet(
				xl.WithDateTimeFormatID(*flagFormatID),
				xl.WithFormatOutput(*flagPretty),
				xl.WithCellReferences(*flagRefs),
				xl.WithLogger(logger),
			)
			if err := copyRows(ctx, ws, cr, *flagDateLayout); err != nil {
				return err
			}
			logger.Info("converted", "file", fn, "rows", ws.Rows())
			return output(ws, *flagOut, *flagDir, *flagSheet)
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

type recordReader interface {
	Read() ([]string, error)
}

// copyRows adds every record as a row. Cells matching dateLayout become
// date-times; the rest is left to the worksheet to classify.
func copyRows(ctx context.Context, ws *xl.Worksheet, cr recordReader, dateLayout string) error {
	var row []any
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		row = row[:0]
		for _, s := range rec {
			if dateLayout != "" {
				if t, err := time.Parse(dateLayout, s); err == nil {
					row = append(row, t)
					continue
				}
			}
			row = append(row, s)
		}
		if err := ws.AddRow(row...); err != nil {
			return err
		}
	}
}

func output(ws *xl.Worksheet, out, dir, sheet string) error {
	if dir != "" {
		return ws.Save(xl.NewDirStorage(dir), sheet)
	}
	if strings.HasSuffix(out, ".zip") {
		fh, err := os.Create(out)
		if err != nil {
			return err
		}
		zs := xl.NewZipStorage(fh)
		if err := ws.Save(zs, sheet); err != nil {
			fh.Close()
			return err
		}
		if err := zs.Close(); err != nil {
			fh.Close()
			return err
		}
		return fh.Close()
	}

	fh := os.Stdout
	if !(out == "" || out == "-") {
		var err error
		if fh, err = os.Create(out); err != nil {
			return err
		}
	}
	if _, err := ws.WriteTo(fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
