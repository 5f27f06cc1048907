package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zoobzio/textops"
	"github.com/zoobzio/textops/fileio"
	"github.com/zoobzio/textops/output"
)

// Semantic styles for terminal output.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

const divider = "============================================================"

// shell runs the interactive menu loop. Pure presentation: all analysis work
// happens in the processor, all persistence in the writer.
type shell struct {
	processor *textops.Processor
	writer    *output.Writer
	readFile  func(string) (fileio.Document, error)
	in        *bufio.Scanner
	out       io.Writer
}

func newShell(processor *textops.Processor, writer *output.Writer, readFile func(string) (fileio.Document, error), in io.Reader, out io.Writer) *shell {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &shell{
		processor: processor,
		writer:    writer,
		readFile:  readFile,
		in:        scanner,
		out:       out,
	}
}

func (s *shell) run(ctx context.Context) error {
	s.printWelcome()

	for {
		s.printMenu()

		choice, ok := s.menuChoice()
		if !ok || choice == "4" {
			fmt.Fprintln(s.out, successStyle.Render("\nThank you for using textops!"))
			return nil
		}

		doc, ok := s.promptForDocument()
		if !ok {
			continue
		}

		req := textops.OperationRequest{
			SourceText: doc.Content,
			FileName:   doc.Name,
		}

		switch choice {
		case "1":
			req.Operation = textops.OpSummarize
		case "2":
			req.Operation = textops.OpTranslate
			target, ok := s.promptLine("Enter target language (e.g., Spanish, French, German):")
			if !ok || target == "" {
				s.showError("target language cannot be empty")
				continue
			}
			req.TargetLanguage = target
		case "3":
			req.Operation = textops.OpSentiment
		}

		s.showProgress(fmt.Sprintf("Running %s", req.Operation))
		record, err := s.processor.Run(ctx, req)
		if err != nil {
			s.showError(err.Error())
			continue
		}
		s.showSuccess("Processing complete")

		s.displayResult(record)

		s.showProgress("Saving results")
		path, err := s.writer.Save(record)
		if err != nil {
			s.showError(fmt.Sprintf("failed to save output: %v", err))
			continue
		}
		s.showSuccess("Results saved to: " + path)

		again, _ := s.promptLine("Process another file? (y/n):")
		if !strings.EqualFold(again, "y") {
			fmt.Fprintln(s.out, successStyle.Render("\nThank you for using textops!"))
			return nil
		}
	}
}

func (s *shell) printWelcome() {
	fmt.Fprintln(s.out, "\n"+divider)
	fmt.Fprintln(s.out, headerStyle.Render("  textops - document analysis"))
	fmt.Fprintln(s.out, divider)
}

func (s *shell) printMenu() {
	fmt.Fprintln(s.out, "\n"+boldStyle.Render("Available Actions:"))
	fmt.Fprintln(s.out, "  "+successStyle.Render("1.")+" Summarize - Generate summary and key points")
	fmt.Fprintln(s.out, "  "+successStyle.Render("2.")+" Translate - Translate text to another language")
	fmt.Fprintln(s.out, "  "+successStyle.Render("3.")+" Sentiment - Analyze sentiment and tone")
	fmt.Fprintln(s.out, "  "+successStyle.Render("4.")+" Exit")
}

func (s *shell) menuChoice() (string, bool) {
	for {
		choice, ok := s.promptLine("Select option (1-4):")
		if !ok {
			return "", false
		}
		switch choice {
		case "1", "2", "3", "4":
			return choice, true
		}
		fmt.Fprintln(s.out, errorStyle.Render("Invalid choice. Please enter 1, 2, 3, or 4."))
	}
}

// promptForDocument asks for a file path until a readable document is given
// or the user gives up.
func (s *shell) promptForDocument() (fileio.Document, bool) {
	for {
		path, ok := s.promptLine("Enter file path:")
		if !ok {
			return fileio.Document{}, false
		}
		if path == "" {
			s.showError("file path cannot be empty")
			continue
		}

		doc, err := s.readFile(path)
		if err == nil {
			return doc, true
		}
		s.showError(err.Error())

		retry, ok := s.promptLine("Try again? (y/n):")
		if !ok || !strings.EqualFold(retry, "y") {
			return fileio.Document{}, false
		}
	}
}

func (s *shell) promptLine(label string) (string, bool) {
	fmt.Fprintln(s.out, boldStyle.Render(label))
	fmt.Fprint(s.out, accentStyle.Render("> "))
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) displayResult(record textops.OutputRecord) {
	fmt.Fprintln(s.out, "\n"+divider)
	fmt.Fprintln(s.out, headerStyle.Render("RESULTS"))
	fmt.Fprintf(s.out, "%s\n\n", divider)

	switch result := record.Result.(type) {
	case textops.SummarizeResponse:
		fmt.Fprintln(s.out, boldStyle.Render("Summary:"))
		fmt.Fprintln(s.out, result.Summary)
		fmt.Fprintln(s.out, "\n"+boldStyle.Render("Key Points:"))
		for i, point := range result.KeyPoints {
			fmt.Fprintf(s.out, "  %d. %s\n", i+1, point)
		}

	case textops.TranslateResponse:
		fmt.Fprintln(s.out, boldStyle.Render("Source Language:")+" "+result.SourceLanguage)
		fmt.Fprintln(s.out, boldStyle.Render("Target Language:")+" "+result.TargetLanguage)
		fmt.Fprintln(s.out, "\n"+boldStyle.Render("Translation:"))
		fmt.Fprintln(s.out, result.TranslatedText)

	case textops.SentimentResponse:
		style := warnStyle
		switch result.Sentiment {
		case textops.SentimentPositive:
			style = successStyle
		case textops.SentimentNegative:
			style = errorStyle
		}
		fmt.Fprintln(s.out, boldStyle.Render("Sentiment:")+" "+style.Render(strings.ToUpper(result.Sentiment)))
		fmt.Fprintf(s.out, "%s %.2f%%\n", boldStyle.Render("Confidence:"), result.Confidence*100)
		fmt.Fprintln(s.out, boldStyle.Render("Explanation:"))
		fmt.Fprintln(s.out, result.Explanation)
	}

	fmt.Fprintf(s.out, "\n%s %s, %d words\n", boldStyle.Render("Document:"), record.LanguageDetected, record.WordCount)
	fmt.Fprintln(s.out, "\n"+divider)
}

func (s *shell) showProgress(message string) {
	fmt.Fprintln(s.out, warnStyle.Render("* "+message+"..."))
}

func (s *shell) showSuccess(message string) {
	fmt.Fprintln(s.out, successStyle.Render("+ "+message))
}

func (s *shell) showError(message string) {
	fmt.Fprintln(s.out, errorStyle.Render("x Error: "+message))
}
