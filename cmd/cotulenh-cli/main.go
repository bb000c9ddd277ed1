// Command cotulenh-cli is an interactive REPL over internal/game.Engine:
// type commands at a prompt, see the board and engine state reflected
// back. There is no wire protocol here (no opponent GUI talks to this
// engine over UCI); it exists to drive the engine by hand.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cotulenh/engine/internal/board"
	"github.com/cotulenh/engine/internal/game"
)

var (
	verbose   = flag.Bool("verbose", false, "enable debug-level logging to stderr")
	cacheSize = flag.Int("cache", 256, "legal-move memoization cache size")
)

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)

	eng, err := game.New(game.WithLogger(log), game.WithCacheSize(*cacheSize))
	if err != nil {
		fmt.Fprintln(os.Stderr, "cotulenh-cli: could not start engine:", err)
		os.Exit(1)
	}

	fmt.Println("cotulenh-cli ready. Type 'help' for commands.")
	printBoard(eng)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "board":
			printBoard(eng)
		case "fen":
			fmt.Println(eng.FEN())
		case "load":
			if len(args) == 0 {
				fmt.Println("usage: load <fen>")
				continue
			}
			if err := eng.Load(strings.Join(args, " ")); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printBoard(eng)
		case "new":
			eng2, err := game.New(game.WithLogger(log), game.WithCacheSize(*cacheSize))
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			eng = eng2
			printBoard(eng)
		case "moves":
			for _, m := range eng.Moves(board.AnyFilter()) {
				fmt.Println(" ", m)
			}
		case "move":
			if len(args) == 0 {
				fmt.Println("usage: move <san>")
				continue
			}
			desc, err := eng.Move(args[0])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			printDescriptor(desc)
			printBoard(eng)
		case "undo":
			if err := eng.Undo(); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printBoard(eng)
		case "commit":
			desc, err := eng.CommitDeploySession()
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			printDescriptor(desc)
			printBoard(eng)
		case "cancel":
			if err := eng.CancelDeploySession(); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printBoard(eng)
		case "reset-deploy":
			if err := eng.ResetDeploySession(); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printBoard(eng)
		case "recombine":
			if len(args) != 2 {
				fmt.Println("usage: recombine <target-square> <piece-letter>")
				continue
			}
			target, err := board.ParseSquare(args[0])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			pt := board.PieceTypeFromLetter(args[1][0])
			if err := eng.Recombine(target, pt); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printBoard(eng)
		case "status":
			printStatus(eng)
		case "heroic":
			if len(args) != 3 {
				fmt.Println("usage: heroic <square> <piece-letter> <true|false>")
				continue
			}
			sq, err := board.ParseSquare(args[0])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			pt := board.PieceTypeFromLetter(args[1][0])
			want, err := strconv.ParseBool(args[2])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			if !eng.SetHeroicStatus(sq, pt, want) {
				fmt.Println("error: no such piece at that square")
			}
		default:
			fmt.Println("unknown command:", cmd, "(try 'help')")
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  board                          print the current board
  fen                            print the current FEN
  load <fen>                     load a position
  new                            start a fresh default game
  moves                          list legal moves/sub-moves
  move <san>                     play a move or deploy sub-move
  undo                           undo the last completed turn
  commit                         commit the active deploy session
  cancel                         cancel the active deploy session
  reset-deploy                   restart the active deploy session
  recombine <square> <letter>    recombine a passenger at session commit
  heroic <square> <letter> <bool> set a piece's heroic flag
  status                         print turn/check/draw state
  quit                           exit`)
}

func printBoard(eng *game.Engine) {
	rows := eng.BoardSnapshot()
	for i, row := range rows {
		rank := board.NumRanks - i
		fmt.Printf("%2d  %s\n", rank, strings.Join(row, " "))
	}
	fmt.Println("    " + strings.Join(fileLabels(), " "))
}

func fileLabels() []string {
	out := make([]string, board.NumFiles)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func printDescriptor(d *game.MoveDescriptor) {
	if d.Deploy {
		fmt.Println("deploy:", d.SAN)
	} else {
		fmt.Println("move:", d.SAN)
	}
	if len(d.Heroic) > 0 {
		fmt.Print("  heroic promotion at:")
		for _, sq := range d.Heroic {
			fmt.Print(" ", sq)
		}
		fmt.Println()
	}
}

func printStatus(eng *game.Engine) {
	fmt.Println("turn:", eng.Turn())
	fmt.Println("move number:", eng.MoveNumber())
	fmt.Println("check:", eng.IsCheck())
	fmt.Println("checkmate:", eng.IsCheckmate())
	fmt.Println("stalemate:", eng.IsStalemate())
	fmt.Println("draw:", eng.IsDraw())
	if sq, ok := eng.GetDeploySession(); ok {
		fmt.Println("deploy session active at:", sq, "can commit:", eng.CanCommitDeploy())
	}
}
