package configuration

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type SimulationConfig struct {
	// number of ticks of a simulation run
	Ticks int `json:"ticks"`
	// maximum absolute error considered to be on target
	Tolerance float64 `json:"tolerance"`
	// number of trailing ticks used to decide convergence
	Window int `json:"window"`
}
