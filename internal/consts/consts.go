package consts

// KELVIN converts a Celsius temperature to Kelvin, used by the
// resistor temperature-coefficient model's nominal-temperature default.
const KELVIN = 273.15
