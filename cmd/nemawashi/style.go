// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/tsuyama1990/nemawashi/config"
	"github.com/tsuyama1990/nemawashi/influence"
)

// renderOpinions tabulates consensus before and after the events, in
// stakeholder order.
func renderOpinions(names []string, before, after map[string]float64) (string, error) {
	data := pterm.TableData{{"Stakeholder", "Before", "After", "Δ"}}
	for _, n := range names {
		d := after[n] - before[n]
		delta := fmt.Sprintf("%+.4f", d)
		switch {
		case d > 0:
			delta = pterm.LightGreen(delta)
		case d < 0:
			delta = pterm.LightRed(delta)
		}
		data = append(data, []string{n, fmt.Sprintf("%.4f", before[n]), fmt.Sprintf("%.4f", after[n]), delta})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// renderRanking tabulates the influence ranking with scores.
func renderRanking(c *influence.Centrality) (string, error) {
	data := pterm.TableData{{"#", "Stakeholder", "Centrality"}}
	for k, n := range c.Ranking() {
		score, _ := c.Score(n)
		data = append(data, []string{fmt.Sprint(k + 1), n, fmt.Sprintf("%.4f", score)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}

	return pterm.DefaultBox.
		WithTitle(pterm.LightCyan("|INFLUENCE " + string(c.Method) + "|")).
		WithTitleTopCenter().
		Sprint(table), nil
}

// renderEvents summarizes the nomikai plan.
func renderEvents(applied, planned []string) string {
	body := "none planned"
	if len(planned) > 0 {
		body = fmt.Sprintf("planned: %s\napplied: %s",
			strings.Join(planned, " → "), strings.Join(applied, " → "))
	}

	return pterm.DefaultBox.
		WithHorizontalPadding(4).
		WithTitle(pterm.LightYellow("|NOMIKAI|")).
		WithTitleTopCenter().
		Sprint(body)
}

func backend(cfg config.EngineConfig, n int) string {
	if cfg.UseSparse(n) {
		return "sparse"
	}

	return "dense"
}

func mean(op map[string]float64) float64 {
	if len(op) == 0 {
		return 0
	}
	var sum float64
	for _, v := range op {
		sum += v
	}

	return sum / float64(len(op))
}
