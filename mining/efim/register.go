package efim

import "github.com/inference-sim/topk-chui/mining"

func init() {
	mining.RegisterMiner(Name, func() mining.Miner { return New() })
}
