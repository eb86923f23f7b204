package holiday

import (
	"math"
	"time"

	"delivery-date-service/internal/civil"
)

// Lunar months start on the civil day of the new moon. lunar-go reckons that
// day at UTC+8; the Korean calendar reckons it in civil.Zone, so a new moon
// between 15:00 and 16:00 UTC starts the Korean month one day later.

const (
	jdUnixEpoch = 2440587.5
	jdNewMoon0  = 2451550.09766 // new moon of 2000-01-06, Meeus ch. 49
	synodic     = 29.530588861
)

// koreanMonthStart returns the Korean first day of the lunar month whose
// first day lunar-go places on chinese.
func koreanMonthStart(chinese civil.Date) civil.Date {
	nm := newMoonNear(chinese.Time().Add(12 * time.Hour))
	if k := civil.DateOf(nm); k == chinese.AddDays(1) {
		return k
	}
	return chinese
}

// newMoonNear returns the instant (UT) of the new moon closest to t.
func newMoonNear(t time.Time) time.Time {
	jd := float64(t.Unix())/86400 + jdUnixEpoch
	k := math.Round((jd - jdNewMoon0) / synodic)
	jde := newMoonJDE(k)
	year := 2000 + k/12.3685
	ut := jde - deltaT(year)/86400
	sec := (ut - jdUnixEpoch) * 86400
	return time.Unix(int64(math.Round(sec)), 0).UTC()
}

// newMoonJDE is the true new moon of lunation k in dynamical time
// (Meeus, Astronomical Algorithms, ch. 49).
func newMoonJDE(k float64) float64 {
	T := k / 1236.85
	T2, T3, T4 := T*T, T*T*T, T*T*T*T

	jde := jdNewMoon0 + synodic*k + 0.00015437*T2 - 0.000000150*T3 + 0.00000000073*T4

	E := 1 - 0.002516*T - 0.0000074*T2
	M := 2.5534 + 29.10535670*k - 0.0000014*T2 - 0.00000011*T3
	Mp := 201.5643 + 385.81693528*k + 0.0107582*T2 + 0.00001238*T3 - 0.000000058*T4
	F := 160.7108 + 390.67050284*k - 0.0016118*T2 - 0.00000227*T3 + 0.000000011*T4
	O := 124.7746 - 1.56375588*k + 0.0020672*T2 + 0.00000215*T3

	jde += -0.40720*sin(Mp) +
		0.17241*E*sin(M) +
		0.01608*sin(2*Mp) +
		0.01039*sin(2*F) +
		0.00739*E*sin(Mp-M) -
		0.00514*E*sin(Mp+M) +
		0.00208*E*E*sin(2*M) -
		0.00111*sin(Mp-2*F) -
		0.00057*sin(Mp+2*F) +
		0.00056*E*sin(2*Mp+M) -
		0.00042*sin(3*Mp) +
		0.00042*E*sin(M+2*F) +
		0.00038*E*sin(M-2*F) -
		0.00024*E*sin(2*Mp-M) -
		0.00017*sin(O) -
		0.00007*sin(Mp+2*M) +
		0.00004*sin(2*Mp-2*F) +
		0.00004*sin(3*M) +
		0.00003*sin(Mp+M-2*F) +
		0.00003*sin(2*Mp+2*F) -
		0.00003*sin(Mp+M+2*F) +
		0.00003*sin(Mp-M+2*F) -
		0.00002*sin(Mp-M-2*F) -
		0.00002*sin(3*Mp+M) +
		0.00002*sin(4*Mp)

	planetary := [...][2]float64{
		{0.000325, 299.77 + 0.107408*k - 0.009173*T2},
		{0.000165, 251.88 + 0.016321*k},
		{0.000164, 251.83 + 26.651886*k},
		{0.000126, 349.42 + 36.412478*k},
		{0.000110, 84.66 + 18.206239*k},
		{0.000062, 141.74 + 53.303771*k},
		{0.000060, 207.14 + 2.453732*k},
		{0.000056, 154.84 + 7.306860*k},
		{0.000047, 34.52 + 27.261239*k},
		{0.000042, 207.19 + 0.121824*k},
		{0.000040, 291.34 + 1.844379*k},
		{0.000037, 161.72 + 24.198154*k},
		{0.000035, 239.56 + 25.513099*k},
		{0.000023, 331.55 + 3.592518*k},
	}
	for _, p := range planetary {
		jde += p[0] * sin(p[1])
	}
	return jde
}

// deltaT approximates TT-UT in seconds (Espenak and Meeus polynomials).
func deltaT(year float64) float64 {
	t := year - 2000
	switch {
	case year >= 1986 && year < 2005:
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t + 0.000651814*t*t*t*t + 0.00002373599*t*t*t*t*t
	case year >= 2005 && year < 2050:
		return 62.92 + 0.32217*t + 0.005589*t*t
	}
	u := (year - 1820) / 100
	if year >= 2050 && year < 2150 {
		return -20 + 32*u*u - 0.5628*(2150-year)
	}
	return -20 + 32*u*u
}

func sin(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
