package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"reelchat/backend/internal/models"

	"github.com/olekukonko/tablewriter"
)

const timeLayout = "2006-01-02 15:04:05"

func newTable(out io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func participantLabel(p models.Participant) string {
	return fmt.Sprintf("%s (%s)", p.Name, p.ID)
}

func renderSessions(out io.Writer, sessions []models.LiveSession) {
	table := newTable(out, []string{"Session", "Side A", "Side B", "Started", "Duration"})
	for _, s := range sessions {
		table.Append([]string{
			s.SessionID,
			participantLabel(s.SideA),
			participantLabel(s.SideB),
			s.StartedAt.Local().Format(timeLayout),
			time.Since(s.StartedAt).Round(time.Second).String(),
		})
	}
	table.Render()
	fmt.Fprintf(out, "%d live session(s)\n", len(sessions))
}

func renderStats(out io.Writer, stats models.Stats) {
	table := newTable(out, []string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"online", strconv.Itoa(stats.Online)},
		{"waiting", strconv.Itoa(stats.Waiting)},
		{"active pairs", strconv.Itoa(stats.ActivePairs)},
		{"total sessions", strconv.Itoa(stats.TotalSessions)},
		{"total messages", strconv.Itoa(stats.TotalMessages)},
	})
	table.Render()
}

func renderHistory(out io.Writer, participantID string, sessions []models.Session) {
	table := newTable(out, []string{"Session", "Partner", "Messages", "Started", "Ended"})
	for _, s := range sessions {
		partner := s.SideB
		if s.SideB.ID == participantID {
			partner = s.SideA
		}
		ended := "live"
		if s.EndedAt != nil {
			ended = s.EndedAt.Local().Format(timeLayout)
		}
		table.Append([]string{
			s.ID,
			participantLabel(partner),
			strconv.Itoa(len(s.Messages)),
			s.StartedAt.Local().Format(timeLayout),
			ended,
		})
	}
	table.Render()
}

func renderUser(out io.Writer, u *models.User) {
	table := newTable(out, []string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"id", u.ID},
		{"telegram id", strconv.FormatInt(u.TelegramID, 10)},
		{"username", u.Username},
		{"chats", strconv.Itoa(u.ChatCount)},
		{"created", u.CreatedAt.Local().Format(timeLayout)},
	})
	table.Render()
}
