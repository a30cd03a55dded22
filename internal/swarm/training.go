package swarm

// TrainingInitialStep is the label a session carries before the first
// progress tick.
const TrainingInitialStep = "Initializing training environment..."

// TrainingStep maps a progress percentage to the pipeline step label.
func TrainingStep(progress int) string {
	switch {
	case progress < 20:
		return "Loading training data..."
	case progress < 40:
		return "Preprocessing data..."
	case progress < 60:
		return "Training model..."
	case progress < 80:
		return "Validating results..."
	case progress < 100:
		return "Finalizing model..."
	default:
		return "Training complete"
	}
}
