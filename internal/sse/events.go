package sse

// Outbound event names
const (
	EventHello             = "hello"
	EventPlayerRole        = "player_role"
	EventUpdatePlayerCount = "update_player_count"
	EventFullRoom          = "full_room"
	EventGameStart         = "game_start"
	EventMessage           = "message"
	EventOpponentSubmitted = "opponent_submitted"
	EventWarning           = "warning"
	EventRoundResult       = "round_result"
	EventUpdateScore       = "update_score"
	EventPlayerLeft        = "player_left"
)

// Inbound event names
const (
	EventRequestStartGame = "request_start_game"
	EventSubmitCard       = "submit_card"
)
