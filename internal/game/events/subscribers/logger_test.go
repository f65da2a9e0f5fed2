package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/events"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))

	logSub.SetEventFilter([]string{events.TypeGameEnded})
	assert.False(t, logSub.InterestedIn(events.TypeAgentMoved))
	assert.True(t, logSub.InterestedIn(events.TypeGameEnded))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeAgentMoved))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "GameStartedEvent",
			event: events.NewGameStartedEvent("game-1", 3, 20, 11, 97),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(3), logLine["num_agents"])
				assert.Equal(t, float64(20), logLine["map_width"])
				assert.Equal(t, float64(97), logLine["food"])
			},
		},
		{
			name:  "AgentMovedEvent",
			event: events.NewAgentMovedEvent("game-1", 4, 1, core.West, core.Coordinate{X: 3, Y: 1}, core.Coordinate{X: 2, Y: 1}, 17),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["agent"])
				assert.Equal(t, "West", logLine["action"])
				assert.Equal(t, "(3,1)", logLine["from"])
				assert.Equal(t, "(2,1)", logLine["to"])
				assert.Equal(t, float64(17), logLine["score"])
			},
		},
		{
			name:  "GameEndedEvent",
			event: events.NewGameEndedEvent("game-1", events.EndReasonLose, -512, 40, time.Second),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "lose", logLine["reason"])
				assert.Equal(t, float64(-512), logLine["final_score"])
				assert.Equal(t, float64(40), logLine["moves"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.InfoLevel)

			logSub.HandleEvent(tc.event)

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "game-1", logLine["game_id"])
			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev-logger", zerolog.New(&buf), zerolog.DebugLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewGameStartedEvent("game-2", 2, 5, 5, 1))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
	assert.Equal(t, "debug", logLine["level"])
	require.Contains(t, logLine, "event_data")
	data := logLine["event_data"].(map[string]interface{})
	assert.Equal(t, events.TypeGameStarted, data["type"])
}
