package florch

// bytesPerParam is the wire size of one float64 parameter.
const bytesPerParam = 8

// RoundCost returns the simulated communication cost of one global round in
// megabytes: every participating client downloads the full parameter payload
// at the round start and uploads its update at the round end.
func RoundCost(numParams int, numClients int) float64 {
	payloadMb := float64(numParams) * bytesPerParam / 1e6
	return payloadMb * 2 * float64(numClients)
}
