package pbsm3d

import "math"

// standardPressure returns standard atmospheric pressure at elevation z
// (metres), in Pa, from the barometric formula used throughout the source
// for elevation-corrected saturation calculations.
func standardPressure(z float64) float64 {
	const p0 = 101325.0
	const lapse = 0.0065
	const t0 = 288.15
	const g = 9.81
	const rd = 287.05
	return p0 * math.Pow(1-lapse*z/t0, g/(rd*lapse))
}

// standardDryAirDensity returns dry air density (kg/m^3) at temperature
// tC (Celsius) and pressure p (Pa).
func standardDryAirDensity(tC, p float64) float64 {
	const rd = 287.05
	tK := tC + 273.15
	return p / (rd * tK)
}

// saturationVapourPressure returns the saturation vapour pressure over ice
// (Pa) at temperature tK (Kelvin), using the Buck equation form used for
// sub-freezing sublimation calculations in the source.
func saturationVapourPressure(tK float64) float64 {
	tC := tK - 273.15
	return 611.15 * math.Exp((23.036-tC/333.7)*tC/(tC+279.82))
}

// specificHumidity returns the air specific humidity q from relative
// humidity rh (percent), temperature tK (Kelvin), and pressure p (Pa),
// following the component design's q = 0.633*ea/P.
func specificHumidity(rh, tK, p float64) float64 {
	ea := (rh / 100) * saturationVapourPressure(tK)
	return 0.633 * ea / p
}
