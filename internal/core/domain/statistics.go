package domain

import "sort"

// ScorePoint is a labelled percentage score, per subject or per period.
type ScorePoint struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// Share is one slice of a whole, in percent.
type Share struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// TopStudent is one row of the high-score table.
type TopStudent struct {
	ID             ExamID  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Score          float64 `json:"score" yaml:"score"`
	ExamsCompleted int     `json:"examsCompleted" yaml:"examsCompleted"`
}

// Statistics is the user's performance summary.
type Statistics struct {
	Subjects    []ScorePoint `json:"subjects" yaml:"subjects"`
	Progress    []ScorePoint `json:"progress" yaml:"progress"`
	Accuracy    []Share      `json:"accuracy" yaml:"accuracy"`
	TopStudents []TopStudent `json:"topStudents" yaml:"topStudents"`
}

// Ranked returns the top students ordered by score, highest first.
// Ties keep their server order.
func (s Statistics) Ranked() []TopStudent {
	out := append([]TopStudent(nil), s.TopStudents...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// AverageScore is the mean subject score, or 0 without subjects.
func (s Statistics) AverageScore() float64 {
	if len(s.Subjects) == 0 {
		return 0
	}
	var sum float64
	for _, p := range s.Subjects {
		sum += p.Score
	}
	return sum / float64(len(s.Subjects))
}
