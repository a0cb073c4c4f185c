// Package osgrid converts British National Grid references (EPSG:27700) to
// WGS84 geographic coordinates (EPSG:4326).
//
// The conversion is the Ordnance Survey procedure: inverse transverse Mercator
// on the Airy 1830 ellipsoid to get an OSGB36 latitude/longitude, then a
// seven-parameter Helmert transformation onto WGS84. Without the OSTN
// correction grid this is accurate to a few metres, which is the same order
// as the ungridded path used by common projection libraries.
package osgrid

import "math"

// Airy 1830 ellipsoid (OSGB36 datum).
const (
	airyA = 6377563.396
	airyB = 6356256.909
)

// WGS84 ellipsoid.
const (
	wgs84A = 6378137.000
	wgs84B = 6356752.3141
)

// National Grid projection parameters.
const (
	scaleF0 = 0.9996012717 // central meridian scale
	lat0    = 49.0 * math.Pi / 180
	lon0    = -2.0 * math.Pi / 180
	east0   = 400000.0
	north0  = -100000.0
)

// Helmert parameters, OSGB36 -> WGS84.
const (
	helmertTX = 446.448
	helmertTY = -125.157
	helmertTZ = 542.060
	helmertS  = -20.4894e-6
	helmertRX = 0.1502 * math.Pi / (180 * 3600)
	helmertRY = 0.2470 * math.Pi / (180 * 3600)
	helmertRZ = 0.8421 * math.Pi / (180 * 3600)
)

// ToLatLon converts a national grid easting/northing in metres to a WGS84
// latitude/longitude in degrees. Input is assumed to lie within the grid's
// valid region; out-of-domain values produce meaningless output rather than
// an error.
func ToLatLon(easting, northing float64) (lat, lon float64) {
	phi, lambda := gridToOSGB36(easting, northing)
	return osgb36ToWGS84(phi, lambda)
}

// gridToOSGB36 runs the inverse transverse Mercator projection, returning
// latitude/longitude in radians on the Airy 1830 ellipsoid.
func gridToOSGB36(easting, northing float64) (phi, lambda float64) {
	e2 := 1 - (airyB*airyB)/(airyA*airyA)
	n := (airyA - airyB) / (airyA + airyB)

	phi = (northing-north0)/(airyA*scaleF0) + lat0
	m := meridianArc(n, phi)
	for northing-north0-m >= 1e-5 {
		phi += (northing - north0 - m) / (airyA * scaleF0)
		m = meridianArc(n, phi)
	}

	sinPhi := math.Sin(phi)
	nu := airyA * scaleF0 / math.Sqrt(1-e2*sinPhi*sinPhi)
	rho := airyA * scaleF0 * (1 - e2) / math.Pow(1-e2*sinPhi*sinPhi, 1.5)
	eta2 := nu/rho - 1

	tanPhi := math.Tan(phi)
	tan2 := tanPhi * tanPhi
	tan4 := tan2 * tan2
	tan6 := tan4 * tan2
	secPhi := 1 / math.Cos(phi)
	nu3 := nu * nu * nu
	nu5 := nu3 * nu * nu
	nu7 := nu5 * nu * nu

	vii := tanPhi / (2 * rho * nu)
	viii := tanPhi / (24 * rho * nu3) * (5 + 3*tan2 + eta2 - 9*tan2*eta2)
	ix := tanPhi / (720 * rho * nu5) * (61 + 90*tan2 + 45*tan4)
	x := secPhi / nu
	xi := secPhi / (6 * nu3) * (nu/rho + 2*tan2)
	xii := secPhi / (120 * nu5) * (5 + 28*tan2 + 24*tan4)
	xiia := secPhi / (5040 * nu7) * (61 + 662*tan2 + 1320*tan4 + 720*tan6)

	de := easting - east0
	de2 := de * de
	de3 := de2 * de
	de4 := de3 * de
	de5 := de4 * de
	de6 := de5 * de
	de7 := de6 * de

	phi = phi - vii*de2 + viii*de4 - ix*de6
	lambda = lon0 + x*de - xi*de3 + xii*de5 - xiia*de7
	return phi, lambda
}

// meridianArc evaluates the OS meridian arc series for latitude phi (radians).
func meridianArc(n, phi float64) float64 {
	n2 := n * n
	n3 := n2 * n
	dPhi := phi - lat0
	sPhi := phi + lat0
	return airyB * scaleF0 * ((1+n+1.25*n2+1.25*n3)*dPhi -
		(3*n+3*n2+21.0/8.0*n3)*math.Sin(dPhi)*math.Cos(sPhi) +
		(15.0/8.0*n2+15.0/8.0*n3)*math.Sin(2*dPhi)*math.Cos(2*sPhi) -
		35.0/24.0*n3*math.Sin(3*dPhi)*math.Cos(3*sPhi))
}

// osgb36ToWGS84 shifts an OSGB36 latitude/longitude (radians) onto the WGS84
// datum, returning degrees.
func osgb36ToWGS84(phi, lambda float64) (lat, lon float64) {
	// Geodetic to cartesian on Airy 1830, height taken as zero.
	e2 := 1 - (airyB*airyB)/(airyA*airyA)
	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	nu := airyA / math.Sqrt(1-e2*sinPhi*sinPhi)
	cx := nu * cosPhi * math.Cos(lambda)
	cy := nu * cosPhi * math.Sin(lambda)
	cz := nu * (1 - e2) * sinPhi

	// Helmert transformation (small-angle form).
	tx := helmertTX + (1+helmertS)*cx - helmertRZ*cy + helmertRY*cz
	ty := helmertTY + helmertRZ*cx + (1+helmertS)*cy - helmertRX*cz
	tz := helmertTZ - helmertRY*cx + helmertRX*cy + (1+helmertS)*cz

	// Cartesian back to geodetic on WGS84.
	we2 := 1 - (wgs84B*wgs84B)/(wgs84A*wgs84A)
	p := math.Hypot(tx, ty)
	lat = math.Atan2(tz, p*(1-we2))
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		nu = wgs84A / math.Sqrt(1-we2*sinLat*sinLat)
		next := math.Atan2(tz+we2*nu*sinLat, p)
		if math.Abs(next-lat) < 1e-12 {
			lat = next
			break
		}
		lat = next
	}
	lon = math.Atan2(ty, tx)
	return lat * 180 / math.Pi, lon * 180 / math.Pi
}
