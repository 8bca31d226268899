package game

// Stage represents where a round is at
type Stage int

const (
	playerTurn Stage = iota
	dealerTurn
	roundOver
)

var stageNames = map[Stage]string{
	playerTurn: "playerTurn",
	dealerTurn: "dealerTurn",
	roundOver:  "roundOver",
}

func (s Stage) String() string {
	return stageNames[s]
}
