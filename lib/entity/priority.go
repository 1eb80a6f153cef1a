package entity

import "sort"

// DefaultPriorities ranks the categories used to resolve overlapping spans. Higher wins.
var DefaultPriorities = map[Category]int{
	Date:          6,
	Budget:        5,
	Time:          4,
	Location:      3,
	AirportCode:   2,
	NumPassengers: 1,
}

// Priorities is a read only category ranking. Categories that are not listed rank 0.
type Priorities struct {
	ranks map[Category]int
}

func NewPriorities(ranks map[Category]int) Priorities {
	if ranks == nil {
		ranks = DefaultPriorities
	}
	p := Priorities{ranks: make(map[Category]int, len(ranks))}
	for k, v := range ranks {
		p.ranks[k] = v
	}
	return p
}

func (p Priorities) Rank(c Category) int {
	if p.ranks == nil {
		return DefaultPriorities[c]
	}
	return p.ranks[c]
}

// Ranked is a single row of the table.
type Ranked struct {
	Category Category `json:"category"`
	Priority int      `json:"priority"`
}

// Table lists the configured categories from highest to lowest rank.
func (p Priorities) Table() []Ranked {
	ranks := p.ranks
	if ranks == nil {
		ranks = DefaultPriorities
	}
	res := make([]Ranked, 0, len(ranks))
	for c, r := range ranks {
		res = append(res, Ranked{Category: c, Priority: r})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Priority != res[j].Priority {
			return res[i].Priority > res[j].Priority
		}
		return res[i].Category < res[j].Category
	})
	return res
}
