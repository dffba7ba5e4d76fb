package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wayfind/internal/types"
)

// ======================== SHELL STYLES ========================

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	responseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).
			Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false)
)

// runShell is the default interactive mode: a read-route-print loop with
// meta commands for switching role and location.
func runShell() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.bridge.Close()

	fmt.Println(headerStyle.Render("wayfind — ask me to go somewhere, create something, or explain the app"))
	fmt.Println(statusStyle.Render("meta: :role <admin|manager|worker>  :loc <path>  :trace  :quit"))
	fmt.Println()

	traceOn := false
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render(fmt.Sprintf("%s (%s) > ", a.location, roleFlag)))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if quit := shellMeta(a, line, &traceOn); quit {
				break
			}
			continue
		}

		res := a.orch.Orchestrate(context.Background(), line, a.location, a.user(), a.sess)
		fmt.Println(responseStyle.Render(res.Response))

		if len(res.SuggestionChips) > 0 {
			rendered := make([]string, len(res.SuggestionChips))
			for i, chip := range res.SuggestionChips {
				rendered[i] = chipStyle.Render(chip.Label)
			}
			fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		}
		if res.Blocked {
			fmt.Println(blockedStyle.Render("blocked: " + res.Reason))
		}

		// Navigation plans run through the bridge unless they need an explicit
		// confirmation first.
		if res.ActionPlan != nil && !res.ActionPlan.RequiresConfirmation {
			a.bridge.Execute(*res.ActionPlan)
		}

		if traceOn {
			fmt.Println(statusStyle.Render(fmt.Sprintf(
				"path=%s skill=%s lang=%s confidence=%.2f warnings=%d",
				res.Debug.MatchPath, res.Debug.MatchedSkillID,
				res.Debug.Normalization.DetectedLanguage,
				res.Debug.Confidence, len(res.Debug.Warnings))))
		}
		fmt.Println()
	}
	return scanner.Err()
}

// shellMeta handles the colon commands. Returns true on :quit.
func shellMeta(a *app, line string, traceOn *bool) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":trace":
		*traceOn = !*traceOn
		fmt.Println(statusStyle.Render(fmt.Sprintf("trace: %v", *traceOn)))
	case ":role":
		if len(fields) < 2 {
			fmt.Println(statusStyle.Render("usage: :role <admin|manager|worker>"))
			break
		}
		switch types.Role(fields[1]) {
		case types.RoleAdmin, types.RoleManager, types.RoleWorker:
			roleFlag = fields[1]
			fmt.Println(statusStyle.Render("role: " + roleFlag))
		default:
			fmt.Println(statusStyle.Render("unknown role: " + fields[1]))
		}
	case ":loc":
		if len(fields) < 2 {
			fmt.Println(statusStyle.Render("usage: :loc </path>"))
			break
		}
		a.location = fields[1]
		fmt.Println(statusStyle.Render("location: " + a.location))
	default:
		fmt.Println(statusStyle.Render("unknown command: " + fields[0]))
	}
	return false
}
