// Command lox runs Lox programs and hosts an interactive REPL.
//
//	lox run <file.lox>
//	lox repl
//	lox version
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pterm/pterm"

	lox "github.com/GFlyan/lox-GFlyan"
)

const (
	appName     = "lox"
	version     = "0.3.0"
	historyFile = ".lox_history"
	promptMain  = "lox> "
	promptCont  = "...> "
)

const helpText = `
REPL commands:
  :help        Show this help
  :ast <code>  Print the AST of a snippet
  :quit        Exit the REPL
`

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(version)
	case "-h", "--help", "help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  %[1]s run <file.lox>   run a program
  %[1]s repl             start an interactive session
  %[1]s version          print the version
`, appName)
}

// sysexits-style codes: 65 for bad input (lex/parse), 70 for runtime faults.
func cmdRun(args []string) int {
	if len(args) != 1 {
		usage()
		return 2
	}
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		pterm.Error.Println(err)
		return 1
	}
	ip := lox.NewInterpreter()
	if err := ip.RunSource(filepath.Base(path), string(src)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if strings.HasPrefix(err.Error(), "RUNTIME") {
			return 70
		}
		return 65
	}
	return 0
}

func cmdRepl() int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	pterm.DefaultBasicText.Println("Lox " + version + " REPL")
	pterm.ThemeDefault.InfoMessageStyle.Println("Ctrl+C cancels input, Ctrl+D exits. Type :help for commands.")

	ip := lox.NewInterpreter()
	for {
		src, quit := readInput(line)
		if quit {
			break
		}
		if src == "" {
			continue
		}
		line.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if handled := replCommand(ip, src); handled {
			continue
		}

		v, err := ip.EvalSource(src)
		if err != nil {
			pterm.Error.Println(lox.WrapErrorWithName(err, "<repl>", src).Error())
			continue
		}
		if v.Tag != lox.VTNil {
			fmt.Println(lox.Stringify(v))
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return 0
}

// readInput collects one logical input, prompting for continuation lines
// while the parser reports the source as incomplete.
func readInput(line *liner.State) (src string, quit bool) {
	var buf []string
	prompt := promptMain
	for {
		text, err := line.Prompt(prompt)
		if err == io.EOF {
			fmt.Println()
			return "", true
		}
		if err == liner.ErrPromptAborted {
			return "", false
		}
		if err != nil {
			pterm.Error.Println(err)
			return "", false
		}
		buf = append(buf, text)
		src = strings.Join(buf, "\n")
		trimmed := strings.TrimSpace(src)
		if trimmed == "" || strings.HasPrefix(trimmed, ":") {
			return trimmed, false
		}
		if _, err := lox.ParseSource(src); lox.IsIncomplete(err) {
			prompt = promptCont
			continue
		}
		return src, false
	}
}

// replCommand handles ":"-prefixed REPL commands; returns true when src was
// one of them.
func replCommand(ip *lox.Interpreter, src string) bool {
	switch {
	case src == ":quit":
		os.Exit(0)
	case src == ":help":
		fmt.Print(helpText)
	case strings.HasPrefix(src, ":ast"):
		code := strings.TrimSpace(strings.TrimPrefix(src, ":ast"))
		if !strings.HasSuffix(code, ";") && !strings.HasSuffix(code, "}") {
			code += ";"
		}
		prog, err := lox.ParseSource(code)
		if err != nil {
			pterm.Error.Println(lox.WrapErrorWithName(err, "<repl>", code).Error())
			return true
		}
		fmt.Print(lox.DumpAST(prog))
	default:
		return false
	}
	return true
}
