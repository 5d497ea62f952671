package compat

// PSUSatisfiesGPU filters a PSU catalog by the chosen GPU: the supply must
// deliver at least the GPU's recommended wattage. A PSU of unknown
// capacity (0) fails any positive requirement.
func PSUSatisfiesGPU(psuWattage, gpuRecommendedWattage int) bool {
	return psuWattage >= gpuRecommendedWattage
}

// GPUSatisfiesPSU filters a GPU catalog by the chosen PSU. It is the same
// inequality as PSUSatisfiesGPU seen from the other catalog; a GPU of
// unknown draw (0) passes every PSU.
func GPUSatisfiesPSU(gpuRecommendedWattage, psuWattage int) bool {
	return gpuRecommendedWattage <= psuWattage
}
