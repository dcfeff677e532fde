package testutil

// WithSolarSystem adds the standard dataset: the Solar system with one body
// of each kind plus a second system and a star that belongs to no system.
func (b *Builder) WithSolarSystem() *Builder {
	return b.
		WithSystem("Solar", "Sun").
		WithSystem("Alpha Centauri", "Rigil Kentaurus").
		WithStar("Sun", InSystem("Solar"),
			Mass(1.989e30), Diameter(1.3927e6), Spectral('G'), Luminosity(3828)).
		WithGasPlanet("Jupiter", InSystem("Solar"),
			Mass(1.898e27), Diameter(139820), Temperature(-110), SurfaceType("gaseous"),
			Gas("Hydrogen", "Rock"), Radiation(75)).
		WithIcePlanet("Neptune", InSystem("Solar"),
			Mass(1.024e26), Diameter(49244), Temperature(-200), Ice("Methane")).
		WithDwarfPlanet("Pluto", InSystem("Solar"),
			Mass(1.309e22), Diameter(2376), Temperature(-230), SurfaceComposition("Nitrogen ice")).
		WithStar("Rigil Kentaurus", InSystem("Alpha Centauri"),
			Mass(2.188e30), Diameter(1.7e6), Spectral('G'), Luminosity(5800)).
		WithStar("Betelgeuse",
			Mass(2.188e31), Diameter(1.234e9), Spectral('M'), Luminosity(126000))
}
