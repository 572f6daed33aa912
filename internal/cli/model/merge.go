package model

// MergeItems разрешает конфликт двух версий одной записи: базой становится
// сторона с более новой меткой времени, после чего Tags и PinboardIDs обеих
// сторон объединяются (union) поверх базы. Политика используется и клиентом,
// и сервером синхронизации.
func MergeItems(a, b Item) Item {
	base, other := a, b
	if b.Timestamp.After(a.Timestamp) {
		base, other = b, a
	}
	base.Tags = unionStrings(base.Tags, other.Tags)
	base.PinboardIDs = unionStrings(base.PinboardIDs, other.PinboardIDs)
	base.Pinned = len(base.PinboardIDs) > 0
	return base
}

// unionStrings объединяет списки, сохраняя порядок первого и дописывая
// новые элементы второго.
func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
