// Command replaycheck replays a move list and prints the board.
//
//	replaycheck -file game.txt -cursor 12 -svg board.svg -png board.png
//	replaycheck -remote http://localhost:8080 < game.txt
//
// With -remote the server's view is fetched as well and compared square by
// square with the local replay.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/IJMacD/chess/internal/board"
	"github.com/IJMacD/chess/internal/msgcat"
	"github.com/IJMacD/chess/internal/render"
	"github.com/IJMacD/chess/internal/replay"
	"github.com/IJMacD/chess/internal/replayclient"
	"github.com/IJMacD/chess/internal/viewer"
)

func main() {
	file := flag.String("file", "", "move list file (default stdin)")
	cursor := flag.Int("cursor", -1, "turns to replay (default all)")
	svgOut := flag.String("svg", "", "write the board as SVG to this path")
	pngOut := flag.String("png", "", "write the board as PNG to this path")
	square := flag.Int("square", render.DefaultSquareSize, "square size in pixels for -png and -svg")
	remote := flag.String("remote", "", "base URL of a chess-replay server to compare against")
	flag.Parse()

	text, err := readInput(*file)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	catalog, err := msgcat.New(os.Getenv("MESSAGES_DIR"))
	if err != nil {
		log.Fatalf("messages: %v", err)
	}

	total := replay.TotalTurns(text)
	cur := viewer.Cursor{Pos: total, Total: total}
	if *cursor >= 0 {
		cur.Pos = *cursor
	}
	cur = cur.Clamp()

	b, replayErr := replay.Replay(text, cur.Pos)
	fmt.Print(b)
	fmt.Println(catalog.RenderOr("replay.summary", map[string]any{"Cursor": cur.Pos, "Total": cur.Total},
		fmt.Sprintf("turn %d of %d", cur.Pos, cur.Total)))

	exit := 0
	var te *replay.TurnError
	if errors.As(replayErr, &te) {
		data := map[string]any{"Turn": te.Turn, "Number": te.Number, "Colour": te.Colour.String(), "Token": te.Token}
		fmt.Println(catalog.RenderOr("replay.failure."+viewer.FailureCode(te.Err), data, te.Error()))
		exit = 1
	}

	opts := render.Options{SquareSize: *square}
	if *svgOut != "" {
		if err := os.WriteFile(*svgOut, render.SVG(b, opts), 0o644); err != nil {
			log.Fatalf("write svg: %v", err)
		}
	}
	if *pngOut != "" {
		out, err := render.PNG(context.Background(), b, opts)
		if err != nil {
			log.Fatalf("render png: %v", err)
		}
		if err := os.WriteFile(*pngOut, out, 0o644); err != nil {
			log.Fatalf("write png: %v", err)
		}
	}

	if *remote != "" {
		if err := compareRemote(*remote, text, cur.Pos, b); err != nil {
			log.Printf("remote check failed: %v", err)
			exit = 1
		} else {
			log.Printf("remote check ok: %s", *remote)
		}
	}
	os.Exit(exit)
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		return string(raw), err
	}
	raw, err := os.ReadFile(path)
	return string(raw), err
}

func compareRemote(baseURL, text string, cursor int, local board.Board) error {
	client := replayclient.New(baseURL, replayclient.WithTimeout(8*time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	v, err := client.Replay(ctx, text, cursor)
	if err != nil {
		return err
	}
	rows := local.Rows()
	for r := range board.Size {
		for f := range board.Size {
			if v.Board[r][f] != rows[r][f] {
				return fmt.Errorf("%s: server has %q, local has %q", board.PositionFromIndices(f, r), v.Board[r][f], rows[r][f])
			}
		}
	}
	return nil
}
