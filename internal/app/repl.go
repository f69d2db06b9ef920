package app

import (
	"bufio"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dshills/tally/internal/persist"
)

// Run drives the interactive prompt loop until the user exits or input
// ends. Returns ErrQuit on a clean exit command.
func (app *Application) Run() error {
	fmt.Fprintln(app.out, "Calculator started. Type 'help' for commands.")

	scanner := bufio.NewScanner(app.in)
	for {
		if app.externalChange.CompareAndSwap(true, false) {
			fmt.Fprintln(app.out, "Note: history file changed on disk. Type 'load' to refresh.")
		}

		fmt.Fprint(app.out, "\nEnter command: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(app.out, "Error: %v\n", err)
				return err
			}
			fmt.Fprintln(app.out, "\nInput terminated. Exiting...")
			return nil
		}

		command := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch command {
		case "":
			continue

		case "help":
			app.printHelp()

		case "exit", "quit":
			fmt.Fprintln(app.out, "Goodbye!")
			return ErrQuit

		case "history":
			app.printHistory()

		case "clear":
			app.calc.ClearHistory()
			fmt.Fprintln(app.out, "History cleared")

		case "undo":
			if err := app.calc.Undo(); err != nil {
				fmt.Fprintln(app.out, "Nothing to undo")
			} else {
				fmt.Fprintln(app.out, "Operation undone")
			}

		case "redo":
			if err := app.calc.Redo(); err != nil {
				fmt.Fprintln(app.out, "Nothing to redo")
			} else {
				fmt.Fprintln(app.out, "Operation redone")
			}

		case "save":
			if err := persist.Save(app.cfg.HistoryFile, app.calc.ExportRecords()); err != nil {
				fmt.Fprintf(app.out, "Error saving history: %v\n", err)
			} else {
				app.markSaved()
				fmt.Fprintln(app.out, "History saved successfully")
			}

		case "load":
			records, err := persist.Load(app.cfg.HistoryFile)
			if err != nil {
				fmt.Fprintf(app.out, "Error loading history: %v\n", err)
			} else {
				app.calc.ImportRecords(records)
				fmt.Fprintln(app.out, "History loaded successfully")
			}

		case "stats":
			app.printStats()

		default:
			if slices.Contains(app.calc.Operations(), command) {
				app.runOperation(command, scanner)
			} else {
				fmt.Fprintf(app.out, "Unknown command: '%s'. Type 'help' for available commands.\n", command)
			}
		}
	}
}

// runOperation prompts for two operands and performs the calculation.
// Entering 'cancel' at either prompt aborts before any state is touched.
func (app *Application) runOperation(name string, scanner *bufio.Scanner) {
	fmt.Fprintln(app.out, "\nEnter numbers (or 'cancel' to abort):")

	a, ok := app.promptNumber(scanner, "First number: ")
	if !ok {
		return
	}
	b, ok := app.promptNumber(scanner, "Second number: ")
	if !ok {
		return
	}

	rec, err := app.calc.Perform(name, a, b)
	if err != nil {
		app.logger.Warn("calculation failed",
			zap.String("operation", name),
			zap.Error(err))
		fmt.Fprintf(app.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(app.out, "\nResult: %s\n", rec.Result)
}

// promptNumber reads one decimal operand, re-prompting on bad input.
// Returns ok=false when the user cancels or input ends.
func (app *Application) promptNumber(scanner *bufio.Scanner, prompt string) (decimal.Decimal, bool) {
	for {
		fmt.Fprint(app.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(app.out, "Operation cancelled")
			return decimal.Decimal{}, false
		}

		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, "cancel") {
			fmt.Fprintln(app.out, "Operation cancelled")
			return decimal.Decimal{}, false
		}

		value, err := decimal.NewFromString(text)
		if err != nil {
			fmt.Fprintf(app.out, "Error: invalid number '%s'\n", text)
			continue
		}
		return value, true
	}
}

func (app *Application) printHelp() {
	fmt.Fprintln(app.out, "\nAvailable commands:")
	fmt.Fprintf(app.out, "  %s - Perform calculations\n", strings.Join(app.calc.Operations(), ", "))
	fmt.Fprintln(app.out, "  history - Show calculation history")
	fmt.Fprintln(app.out, "  clear - Clear calculation history")
	fmt.Fprintln(app.out, "  undo - Undo the last calculation")
	fmt.Fprintln(app.out, "  redo - Redo the last undone calculation")
	fmt.Fprintln(app.out, "  save - Save calculation history to file")
	fmt.Fprintln(app.out, "  load - Load calculation history from file")
	fmt.Fprintln(app.out, "  stats - Show observer delivery statistics")
	fmt.Fprintln(app.out, "  help - Show this help message")
	fmt.Fprintln(app.out, "  exit - Exit the calculator")
}

func (app *Application) printHistory() {
	records := app.calc.History()
	if len(records) == 0 {
		fmt.Fprintln(app.out, "No calculations in history")
		return
	}

	fmt.Fprintln(app.out, "\nCalculation History:")
	for i, rec := range records {
		fmt.Fprintf(app.out, "%d. %s\n", i+1, rec)
	}
}

func (app *Application) printStats() {
	stats := app.calc.Stats()
	fmt.Fprintln(app.out, "\nObserver deliveries:")
	fmt.Fprintf(app.out, "  dispatched: %d\n", stats.Dispatched)
	fmt.Fprintf(app.out, "  succeeded:  %d\n", stats.Succeeded)
	fmt.Fprintf(app.out, "  failed:     %d\n", stats.Failed)
	fmt.Fprintf(app.out, "  panicked:   %d\n", stats.Panicked)
}
