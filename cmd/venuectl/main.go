// Package main provides venuectl, an offline converter from booking
// workbooks to JSON snapshots and a listener for dataset notifications.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/xiaot623/gogo/venueboard/internal/collection"
	"github.com/xiaot623/gogo/venueboard/internal/config"
	"github.com/xiaot623/gogo/venueboard/internal/domain"
	"github.com/xiaot623/gogo/venueboard/internal/mapping"
	"github.com/xiaot623/gogo/venueboard/internal/snapshot"
	"github.com/xiaot623/gogo/venueboard/internal/spreadsheet"
)

const usage = `usage: venuectl <command> [flags]

commands:
  convert  convert an xlsx workbook into a JSON snapshot
  watch    print dataset notifications from a running server
`

func main() {
	log.SetFlags(log.Ltime)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	in := fs.String("in", "", "input xlsx workbook")
	out := fs.String("out", "", "output snapshot file (default stdout)")
	sheet := fs.String("sheet", "", "sheet name (default first sheet)")
	pipelineFile := fs.String("pipeline", "", "pipeline YAML file (default built-in)")
	mappingFile := fs.String("mapping", "", "field mapping YAML file, overrides the pipeline mapping")
	tz := fs.String("tz", "Local", "timezone for spreadsheet dates")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("-in is required")
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	pipeline, err := config.LoadPipeline(*pipelineFile)
	if err != nil {
		return fmt.Errorf("load pipeline: %w", err)
	}
	if *mappingFile != "" {
		if pipeline.Mapping, err = mapping.Load(*mappingFile); err != nil {
			return fmt.Errorf("load mapping: %w", err)
		}
	}
	ctx := context.Background()
	compiled, err := pipeline.Compile(ctx, loc, nil)
	if err != nil {
		return fmt.Errorf("compile pipeline: %w", err)
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := spreadsheet.Decode(f, *sheet)
	if err != nil {
		return err
	}
	res, err := collection.Build(ctx, rows, compiled.Options)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		of, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer of.Close()
		w = of
	}
	if err := snapshot.Encode(w, res.Records); err != nil {
		return err
	}

	log.Printf("Converted %d rows: %d records, %d excluded, %d skipped",
		len(rows), len(res.Records), len(res.Excluded), len(res.Skipped))
	return nil
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	addr := fs.String("addr", "ws://localhost:8080/ws", "WebSocket server address")
	fs.Parse(args)

	fmt.Printf("Connecting to %s...\n", *addr)
	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	fmt.Println("Connected. Waiting for dataset notifications.")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("Read error: %v", err)
				}
				return
			}
			printNotice(os.Stdout, data)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case <-done:
		return nil
	case <-interrupt:
		fmt.Println("\nInterrupted")
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		return conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	}
}

// printNotice writes one line per notification; unknown messages are
// printed as raw JSON.
func printNotice(w io.Writer, data []byte) {
	var n domain.DatasetNotice
	if err := json.Unmarshal(data, &n); err != nil || n.Type != domain.NoticeDatasetReplaced {
		fmt.Fprintf(w, "%s\n", data)
		return
	}
	fmt.Fprintf(w, "[%s] dataset %s replaced from %s: %d records\n",
		time.UnixMilli(n.Ts).Format(time.RFC3339), n.DatasetID, n.Source, n.Records)
}
