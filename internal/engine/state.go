package engine

type RunStatus int

const (
	StatusPending RunStatus = iota
	StatusRunning
	StatusCompleted
	StatusFailed
)

func (s RunStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State tracks pipeline progress: the extraction step plus one step per
// generation target.
type State struct {
	Status      RunStatus
	CurrentStep int
	TotalSteps  int
	Error       error
}

func NewState(totalSteps int) *State {
	return &State{
		Status:     StatusPending,
		TotalSteps: totalSteps,
	}
}

func (s *State) Start() {
	s.Status = StatusRunning
}

func (s *State) Complete() {
	s.Status = StatusCompleted
}

func (s *State) Fail(err error) {
	s.Status = StatusFailed
	s.Error = err
}

func (s *State) NextStep() {
	s.CurrentStep++
}

func (s *State) IsRunning() bool {
	return s.Status == StatusRunning
}
