package config

type ConfigurableLoop string

const (
	ConfigurableLoopDistributionStats ConfigurableLoop = "distributionStats"
	ConfigurableLoopMintGateStats     ConfigurableLoop = "mintGateStats"
)
