package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"vicecity-server/internal/domain"
	"vicecity-server/internal/infrastructure/storage"
)

func main() {
	var (
		asJSON bool
		limit  int
	)
	flag.BoolVar(&asJSON, "json", false, "Print the whole session as JSON")
	flag.IntVar(&limit, "limit", 0, "Print at most N inputs (0 - all)")
	flag.Usage = printHelp
	flag.Parse()

	if flag.NArg() != 1 {
		printHelp()
		os.Exit(2)
	}

	session, err := storage.LoadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "replaydump: %v\n", err)
		os.Exit(1)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(session); err != nil {
			fmt.Fprintf(os.Stderr, "replaydump: %v\n", err)
			os.Exit(1)
		}
		return
	}

	dump(os.Stdout, session, limit)
}

func dump(w io.Writer, s *domain.ReplaySession, limit int) {
	fmt.Fprintf(w, "Session:   %s\n", s.ID)
	fmt.Fprintf(w, "Seed:      %d\n", s.Seed)
	fmt.Fprintf(w, "World:     %016x\n", s.World)
	fmt.Fprintf(w, "Recorded:  %s\n", time.Unix(s.Timestamp, 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Tick rate: %d Hz\n", s.TickRate)
	if s.TickRate > 0 {
		dur := time.Duration(s.Frames) * time.Second / time.Duration(s.TickRate)
		fmt.Fprintf(w, "Frames:    %d (%s)\n", s.Frames, dur)
	} else {
		fmt.Fprintf(w, "Frames:    %d\n", s.Frames)
	}
	fmt.Fprintf(w, "Inputs:    %d\n\n", len(s.Inputs))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tDX\tDY\tFLAGS")
	for i, rec := range s.Inputs {
		if limit > 0 && i >= limit {
			fmt.Fprintf(tw, "...\t%d more\t\t\n", len(s.Inputs)-limit)
			break
		}
		fmt.Fprintf(tw, "%d\t%+.2f\t%+.2f\t%s\n", rec.Frame, rec.Input.Dx, rec.Input.Dy, flags(rec.Input))
	}
	tw.Flush()
}

func flags(in domain.Input) string {
	var f []string
	if in.Sprint {
		f = append(f, "sprint")
	}
	if in.EnterExit {
		f = append(f, "enter/exit")
	}
	if in.Attack {
		f = append(f, "attack")
	}
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, ",")
}

func printHelp() {
	fmt.Fprintln(os.Stderr, `Replay Dump - просмотр файлов реплея (.vcrp)
Usage:
  replaydump [-json] [-limit N] <file.vcrp>
Flags:
  -json       вывести сессию целиком в JSON
  -limit N    показать не больше N записей ввода`)
}
