// Package calculator computes read-only statistics over the equipment table.
package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/gearcheck/internal/models"
)

// Tally is a present/donated/absent count with its coverage percentage.
type Tally struct {
	// Key is the item, person or team the tally is about.
	Key string

	models.StateCounts

	// Total is the denominator used for Coverage.
	Total int

	// Coverage is (Present + Donated) / Total × 100, rounded to one decimal.
	// Zero when Total is zero.
	Coverage float64
}

// Coverage returns held/total as a percentage rounded to one decimal.
func Coverage(held, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(held)/float64(total)*1000) / 10
}

func finish(key string, c models.StateCounts, total int) Tally {
	return Tally{Key: key, StateCounts: c, Total: total, Coverage: Coverage(c.Held(), total)}
}

// ItemTallies counts each item's states across all people, in item order.
// The coverage denominator is the number of people.
func ItemTallies(people []models.Person, items []string) []Tally {
	out := make([]Tally, len(items))
	for i, item := range items {
		var c models.StateCounts
		for _, p := range people {
			c.Add(p.Items[item])
		}
		out[i] = finish(item, c, len(people))
	}
	return out
}

// PersonTallies counts each person's states across all items, in table
// order. The coverage denominator is the number of items.
func PersonTallies(people []models.Person, items []string) []Tally {
	out := make([]Tally, len(people))
	for i, p := range people {
		var c models.StateCounts
		for _, item := range items {
			c.Add(p.Items[item])
		}
		out[i] = finish(p.Name, c, len(items))
	}
	return out
}

// TeamTallies aggregates people by team, sorted by team name. The coverage
// denominator is people in the team × number of items.
func TeamTallies(people []models.Person, items []string) []Tally {
	counts := make(map[string]*models.StateCounts)
	members := make(map[string]int)
	for _, p := range people {
		c, ok := counts[p.Team]
		if !ok {
			c = &models.StateCounts{}
			counts[p.Team] = c
		}
		members[p.Team]++
		for _, item := range items {
			c.Add(p.Items[item])
		}
	}

	teams := make([]string, 0, len(counts))
	for team := range counts {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	out := make([]Tally, len(teams))
	for i, team := range teams {
		out[i] = finish(team, *counts[team], members[team]*len(items))
	}
	return out
}

// Summary bundles every tally of one table.
type Summary struct {
	People   int
	Items    []string
	Totals   Tally
	ByItem   []Tally
	ByPerson []Tally
	ByTeam   []Tally
}

// Summarize computes all tallies of a table through a schema.
func Summarize(t *models.Table, schema models.Schema) Summary {
	people := schema.People(t)
	items := schema.Items(t)

	s := Summary{
		People:   len(people),
		Items:    items,
		ByItem:   ItemTallies(people, items),
		ByPerson: PersonTallies(people, items),
		ByTeam:   TeamTallies(people, items),
	}

	var total models.StateCounts
	for _, p := range s.ByPerson {
		total.Present += p.Present
		total.Donated += p.Donated
		total.Absent += p.Absent
	}
	s.Totals = finish("", total, len(people)*len(items))
	return s
}
