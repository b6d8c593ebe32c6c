package shift

import "time"

const minutesPerDay = 24 * 60

// bandEdges are the minute-of-day boundaries where the band changes.
var bandEdges = [...]int{6 * 60, 14 * 60, 22 * 60, minutesPerDay}

// ClassifyOverlap returns the same label as Classify without walking every
// minute: samples are counted per band segment arithmetically.
func ClassifyOverlap(start, end time.Time) Label {
	return OverlapCounts(start, end).Winner()
}

// OverlapCounts produces the counters SampleCounts would produce.
//
// Sample k sits at start+k minutes, so its hour only depends on the
// minute-of-day of start plus k; the seconds of start never move a sample
// into another hour.
func OverlapCounts(start, end time.Time) Counts {
	var counts Counts
	from, to := wallClock(start), wallClock(end)
	if !to.After(from) {
		return counts
	}

	span := to.Sub(from)
	samples := int((span + time.Minute - 1) / time.Minute)

	if full := samples / minutesPerDay; full > 0 {
		counts.Overday += full * 8 * 60
		counts.Mid += full * 8 * 60
		counts.Night += full * 8 * 60
	}

	remaining := samples % minutesPerDay
	pos := from.Hour()*60 + from.Minute()
	for remaining > 0 {
		edge := nextEdge(pos)
		take := min(remaining, edge-pos)
		counts.add(BandForHour(pos/60), take)
		remaining -= take
		pos = edge % minutesPerDay
	}
	return counts
}

func nextEdge(pos int) int {
	for _, edge := range bandEdges {
		if pos < edge {
			return edge
		}
	}
	return minutesPerDay
}
