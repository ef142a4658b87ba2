// Package gameevents defines the topics and payloads the game module
// exchanges on the event bus.
package gameevents

// Topics follow "<domain>.<event>.v<version>".
const (
	// GameRecordRequestedV1 asks the module to summarize and store a finished game.
	GameRecordRequestedV1 = "game.record.requested.v1"
	// GameRecordedV1 is published once a game record has committed.
	GameRecordedV1 = "game.recorded.v1"
	// GameRecordFailedV1 answers a record request that could not be stored.
	GameRecordFailedV1 = "game.record.failed.v1"

	// RankingsRequestedV1 asks for a user's current rankings.
	RankingsRequestedV1 = "game.rankings.requested.v1"
	// RankingsResponseV1 carries the rankings computed for a request.
	RankingsResponseV1 = "game.rankings.response.v1"
	// RankingsFailedV1 answers a rankings request that could not be served.
	RankingsFailedV1 = "game.rankings.failed.v1"
)
