package utilities

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID generates a new globally unique KSUID string.
func NewKSUID() string {
	return ksuid.New().String()
}

// IDGenerator hands out time-ordered int64 snowflake ids from one node.
// A single generator must be shared per process: two nodes with the same
// id would restart the sequence and collide within a millisecond.
type IDGenerator struct {
	node *snowflake.Node
}

// NewIDGenerator creates a generator bound to nodeID (0..1023).
func NewIDGenerator(nodeID int64) (*IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &IDGenerator{node: node}, nil
}

// NodeFromEnv reads the snowflake node id from SNOWFLAKE_NODE, defaulting to 1.
func NodeFromEnv() int64 {
	nodeEnv := os.Getenv("SNOWFLAKE_NODE")
	if nodeEnv == "" {
		return 1
	}
	nodeID, err := strconv.ParseInt(nodeEnv, 10, 64)
	if err != nil {
		return 1
	}
	return nodeID
}

func (g *IDGenerator) Next() int64 {
	return g.node.Generate().Int64()
}
