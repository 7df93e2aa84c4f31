package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"screener-backend/internal/embed"
	"screener-backend/internal/extract"
	"screener-backend/internal/llm"
	"screener-backend/internal/llm/groq"
	"screener-backend/internal/match"
	"screener-backend/internal/report"
	"screener-backend/internal/screening"
	"screener-backend/internal/session"
	"screener-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	jdPath := flag.String("jd", "", "Path to job description file (pdf, docx, or text)")
	resumePaths := flag.String("resume", "", "Comma-separated resume file paths (pdf, docx, or text)")
	transcriptPath := flag.String("transcript", "", "Path to a transcript file with 'Recruiter: ...' / 'Candidate: ...' lines (optional)")
	scoreOnly := flag.Bool("score", false, "Print the resume match score and exit")
	analyze := flag.Bool("analyze", false, "Run the fit analysis (requires GROQ_API_KEY)")
	format := flag.String("format", "text", "Report format: text, pdf, or docx")
	outPath := flag.String("out", "", "Path to write the evaluation report (optional)")
	flag.Parse()

	if strings.TrimSpace(*jdPath) == "" {
		exitErr("job description path is required")
	}
	if strings.TrimSpace(*resumePaths) == "" {
		exitErr("at least one resume path is required")
	}
	if !*scoreOnly && !*analyze {
		exitErr("nothing to do: pass -score or -analyze")
	}

	ctx := context.Background()

	embedder, err := embed.New(ctx, cfg.EmbedBackend, cfg.GeminiAPIKey, cfg.GeminiEmbedModel)
	if err != nil {
		exitErr(fmt.Sprintf("embedding backend: %v", err))
	}

	var client llm.Client = llm.PlaceholderClient{}
	if *analyze {
		if strings.TrimSpace(cfg.GroqAPIKey) == "" {
			exitErr("GROQ_API_KEY is required for -analyze")
		}
		client, err = groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel)
		if err != nil {
			exitErr(fmt.Sprintf("groq client: %v", err))
		}
	}

	svc := screening.NewService(session.New(), match.NewScorer(embedder), client, screening.NewHistory())

	jdText, err := extract.Load(ctx, *jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}
	if _, err := svc.SetJobDescriptionText(jdText); err != nil {
		exitErr(fmt.Sprintf("load job description: %v", err))
	}

	for _, p := range strings.Split(*resumePaths, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		resumeText, err := extract.Load(ctx, p)
		if err != nil {
			exitErr(fmt.Sprintf("read resume: %v", err))
		}
		if _, err := svc.AddResumeText(ctx, filepath.Base(p), resumeText); err != nil {
			exitErr(fmt.Sprintf("load resume: %v", err))
		}
	}

	if strings.TrimSpace(*transcriptPath) != "" {
		if err := replayTranscript(ctx, svc, *transcriptPath); err != nil {
			exitErr(fmt.Sprintf("replay transcript: %v", err))
		}
	}

	score, err := svc.Score(ctx)
	if err != nil {
		exitErr(fmt.Sprintf("match score: %v", err))
	}
	fmt.Printf("Initial Resume Match: %.1f/10\n", score)

	if *scoreOnly && !*analyze {
		return
	}

	result, err := svc.Analyze(ctx)
	if err != nil {
		exitErr(fmt.Sprintf("analysis: %v", err))
	}

	fmt.Println()
	fmt.Println(result.Analysis)
	if result.Questions != "" {
		fmt.Println()
		fmt.Println("--- INTERVIEW QUESTIONS ---")
		fmt.Println()
		fmt.Println(result.Questions)
	}

	if strings.TrimSpace(*outPath) != "" {
		if err := writeReport(result, *format, *outPath); err != nil {
			exitErr(fmt.Sprintf("write report: %v", err))
		}
	}
}

// replayTranscript feeds "Sender: text" lines into the conversation. Blank
// lines are skipped.
func replayTranscript(ctx context.Context, svc *screening.Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rawSender, text, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("line %d: expected 'Recruiter: ...' or 'Candidate: ...'", lineNo)
		}
		sender := normalizeSender(rawSender)
		if !session.ValidSender(sender) {
			return fmt.Errorf("line %d: unknown sender %q", lineNo, strings.TrimSpace(rawSender))
		}
		if _, err := svc.AppendMessage(ctx, sender, strings.TrimSpace(text)); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func normalizeSender(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "recruiter":
		return session.SenderRecruiter
	case "candidate":
		return session.SenderCandidate
	default:
		return strings.TrimSpace(raw)
	}
}

func writeReport(result screening.Result, format, outPath string) error {
	rep := report.Report{
		Analysis:  result.Analysis,
		Questions: result.Questions,
		Meta: report.Metadata{
			GeneratedAt:  result.CreatedAt,
			MessageCount: result.MessageCount,
			MatchScore:   result.MatchScore,
		},
	}
	data, ext, err := report.Render(format, rep)
	if err != nil {
		return err
	}
	if filepath.Ext(outPath) == "" {
		outPath += ext
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Report saved as %s\n", outPath)
	return nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
