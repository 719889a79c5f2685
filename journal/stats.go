package journal

// Stats summarizes the journal for the dashboard.
type Stats struct {
	Trades   int
	TotalPnL float64
	Wins     int
	Losses   int
	WinRate  float64 // percent

	Recent []Point
}

// Point is one bar of the recent P/L chart.
type Point struct {
	Label string // MM-DD
	PnL   float64
}

const recentPoints = 10

// ComputeStats expects trades most recent first. Recent holds up to the last
// ten trades, oldest first.
func ComputeStats(trades []Trade) Stats {
	s := Stats{Trades: len(trades)}
	for _, t := range trades {
		s.TotalPnL += t.PnL
		switch {
		case t.PnL > 0:
			s.Wins++
		case t.PnL < 0:
			s.Losses++
		}
	}
	if len(trades) > 0 {
		s.WinRate = float64(s.Wins) / float64(len(trades)) * 100
	}

	n := min(len(trades), recentPoints)
	s.Recent = make([]Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		s.Recent = append(s.Recent, Point{Label: shortDate(trades[i].Date), PnL: trades[i].PnL})
	}
	return s
}

func shortDate(date string) string {
	if len(date) < 5 {
		return date
	}
	return date[5:]
}
