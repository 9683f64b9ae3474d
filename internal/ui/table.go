package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gurisko/tak/internal/worktree"
)

// RenderSlotTable renders one line per slot plus a footer naming the
// remaining free slots. Column widths adapt to the widest cell.
func RenderSlotTable(rows []worktree.Slot, free []string) string {
	name_w := len("NAME")
	branch_w := len("BRANCH")
	db_w := len("DATABASE")
	for _, s := range rows {
		name_w = max(name_w, len(s.Name))
		branch_w = max(branch_w, len(s.Branch))
		db_w = max(db_w, len(s.Database))
	}

	var b strings.Builder
	b.WriteString(header_style.Render(fmt.Sprintf("  %-*s  %-*s  %6s  %-*s  %s",
		name_w, "NAME", branch_w, "BRANCH", "PORT", db_w, "DATABASE", "PID")))
	b.WriteString("\n")
	for _, s := range rows {
		b.WriteString(format_slot_line(s, name_w, branch_w, db_w))
		b.WriteString("\n")
	}
	b.WriteString(free_footer(free))
	return b.String()
}

// format_slot_line pads each cell before styling so the ANSI codes never
// disturb the alignment.
func format_slot_line(s worktree.Slot, name_w, branch_w, db_w int) string {
	name := name_style.Render(fmt.Sprintf("%-*s", name_w, s.Name))

	branch := fmt.Sprintf("%-*s", branch_w, s.Branch)
	if s.Branch == "unknown" {
		branch = dim_style.Render(branch)
	}

	port := "-"
	if s.Port > 0 {
		port = ":" + strconv.Itoa(s.Port)
	}
	port = hint_style.Render(fmt.Sprintf("%6s", port))

	pid := "-"
	if s.Pid > 0 {
		pid = strconv.Itoa(s.Pid)
	}

	return fmt.Sprintf("%s %s  %s  %s  %-*s  %s",
		status_indicator(s), name, branch, port, db_w, s.Database, pid)
}

func status_indicator(s worktree.Slot) string {
	if s.Running {
		return running_style.Render("●")
	}
	return stopped_style.Render("○")
}

func free_footer(free []string) string {
	if len(free) == 0 {
		return dim_style.Render("  free: none")
	}
	return dim_style.Render("  free: " + strings.Join(free, ", "))
}

// RenderCheck renders one doctor row: a pass/fail glyph, the check name,
// and what was found.
func RenderCheck(name string, ok bool, detail string) string {
	glyph := running_style.Render("✓")
	if !ok {
		glyph = stopped_style.Render("✗")
	}
	return fmt.Sprintf("%s %-16s %s", glyph, name, detail)
}

// RenderCheckHint renders the indented fix-it line under a failed check.
func RenderCheckHint(hint string) string {
	return dim_style.Render("    " + hint)
}
