package filename

// difficultyLabels maps difficulty codes to their display tier. Codes 1 and 2
// share the beginner label; the code itself is kept on the record.
var difficultyLabels = map[int]string{
	1: "초급",
	2: "초급",
	3: "중급",
	4: "고급",
	5: "최상",
}

// DifficultyLabel returns the tier label for code and whether code is valid.
func DifficultyLabel(code int) (string, bool) {
	label, ok := difficultyLabels[code]
	return label, ok
}
