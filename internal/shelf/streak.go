// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import "time"

// currentStreak counts consecutive active days ending today, or ending
// yesterday when nothing has been read yet today. days holds YYYY-MM-DD keys.
func currentStreak(days []string, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	active := make(map[string]struct{}, len(days))
	for _, day := range days {
		active[day] = struct{}{}
	}

	cursor := now
	if _, ok := active[cursor.Format(time.DateOnly)]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := active[cursor.Format(time.DateOnly)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}
