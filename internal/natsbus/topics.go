package natsbus

import "fmt"

// Topic patterns for NATS pub/sub communication.

func TopicSwarmLifecycle(swarmID string) string {
	return fmt.Sprintf("events.swarm.%s", swarmID)
}

func TopicTrainingProgress(swarmID string) string {
	return fmt.Sprintf("events.training.%s", swarmID)
}

const (
	TopicEventsAll      = "events.>"
	TopicEventsDecision = "events.decision.created"
	TopicEventsNotify   = "events.notify"
	TopicEventsArtifact = "events.artifact.ready"
)
