package sim

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/peterkuimelis/hanabi/internal/game"
)

// Report aggregates finished games. Merging is associative and commutative,
// so partial reports from any number of workers combine to the same totals.
type Report struct {
	Runs       int
	TotalScore int
	MaxScore   int
	TotalTurns int
	Misplays   int
	CluesGiven int
	Discards   int
	Outcomes   [game.OutcomeVictory + 1]int
	Histogram  [game.MaxScore + 1]int
}

// Add folds one game into the report.
func (r *Report) Add(res game.GameResult) {
	r.Runs++
	r.TotalScore += res.Score
	r.MaxScore = max(r.MaxScore, res.Score)
	r.TotalTurns += res.Turns
	r.Misplays += res.Misplays
	r.CluesGiven += res.CluesGiven
	r.Discards += res.Discards
	r.Outcomes[res.Outcome]++
	r.Histogram[res.Score]++
}

// Merge folds another partial report into r.
func (r *Report) Merge(o Report) {
	r.Runs += o.Runs
	r.TotalScore += o.TotalScore
	r.MaxScore = max(r.MaxScore, o.MaxScore)
	r.TotalTurns += o.TotalTurns
	r.Misplays += o.Misplays
	r.CluesGiven += o.CluesGiven
	r.Discards += o.Discards
	for i := range r.Outcomes {
		r.Outcomes[i] += o.Outcomes[i]
	}
	for i := range r.Histogram {
		r.Histogram[i] += o.Histogram[i]
	}
}

// Average is the mean score, 0 for an empty report.
func (r Report) Average() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.Runs)
}

// Rate is the share of games that ended with o.
func (r Report) Rate(o game.Outcome) float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Outcomes[o]) / float64(r.Runs)
}

// SummaryLine is the one-line batch report printed at the end of a run.
func (r Report) SummaryLine() string {
	return fmt.Sprintf("simulations:%d average_score:%.3f max_score:%d strikeout_rate:%.3f bottomout_rate:%.3f victory_rate:%.3f",
		r.Runs, r.Average(), r.MaxScore,
		r.Rate(game.OutcomeStruckOut), r.Rate(game.OutcomeBottomedOut), r.Rate(game.OutcomeVictory))
}

// Table renders the outcome breakdown.
func (r Report) Table() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%d games, average score %.2f, max %d", r.Runs, r.Average(), r.MaxScore))
	t.AppendHeader(table.Row{"Outcome", "Games", "Rate"})
	for _, o := range game.Outcomes {
		t.AppendRow(table.Row{o.String(), r.Outcomes[o], fmt.Sprintf("%.1f%%", 100*r.Rate(o))})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"Misplays / game", "", perGame(r.Misplays, r.Runs)})
	t.AppendRow(table.Row{"Clues / game", "", perGame(r.CluesGiven, r.Runs)})
	t.AppendRow(table.Row{"Turns / game", "", perGame(r.TotalTurns, r.Runs)})
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return t.Render()
}

// HistogramTable renders the score distribution, skipping empty scores.
func (r Report) HistogramTable() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Score", "Games", ""})
	peak := 0
	for _, n := range r.Histogram {
		peak = max(peak, n)
	}
	for score, n := range r.Histogram {
		if n == 0 {
			continue
		}
		bar := 0
		if peak > 0 {
			bar = n * 40 / peak
		}
		t.AppendRow(table.Row{score, n, strings.Repeat("#", bar)})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func perGame(total, runs int) string {
	if runs == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", float64(total)/float64(runs))
}

// Summary is the JSON form of a report.
type Summary struct {
	Runs           int                `json:"runs"`
	AverageScore   float64            `json:"average_score"`
	MaxScore       int                `json:"max_score"`
	Outcomes       map[string]int     `json:"outcomes"`
	Rates          map[string]float64 `json:"rates"`
	ScoreHistogram []int              `json:"score_histogram"`
}

// Summary converts the report for JSON encoding.
func (r Report) Summary() Summary {
	s := Summary{
		Runs:           r.Runs,
		AverageScore:   r.Average(),
		MaxScore:       r.MaxScore,
		Outcomes:       make(map[string]int),
		Rates:          make(map[string]float64),
		ScoreHistogram: append([]int(nil), r.Histogram[:]...),
	}
	for _, o := range game.Outcomes {
		s.Outcomes[o.String()] = r.Outcomes[o]
		s.Rates[o.String()] = r.Rate(o)
	}
	return s
}
