package cmd

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zjrosen/spaceplace/internal/app"
	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/presentation"
	"github.com/zjrosen/spaceplace/internal/registry"
)

// bodyFlags holds every flag a body command may register.
type bodyFlags struct {
	name     string
	mass     float64
	diameter float64
	system   string

	temperature float64
	surfaceType string
	water       bool

	spectral   string
	luminosity float64

	gas       string
	core      string
	radiation float64
	ice       string
	surface   string
}

func addCommonFlags(fs *pflag.FlagSet, f *bodyFlags) {
	fs.StringVar(&f.name, "name", "", "name (at most 30 characters)")
	fs.Float64Var(&f.mass, "mass", 0, "mass in kg (values <= 0.1 become 0.1)")
	fs.Float64Var(&f.diameter, "diameter", 0, "diameter in km (values <= 0.5 become 0.5)")
	fs.StringVar(&f.system, "system", "", "name of the planetary system the body belongs to")
}

func addPlanetFlags(fs *pflag.FlagSet, f *bodyFlags) {
	fs.Float64Var(&f.temperature, "temperature", 0, "average temperature, -400 to 400")
	fs.StringVar(&f.surfaceType, "surface-type", "", "surface type (at most 19 characters)")
	fs.BoolVar(&f.water, "water", false, "the planet has liquid water")
}

func addStarFlags(fs *pflag.FlagSet, f *bodyFlags) {
	fs.StringVar(&f.spectral, "spectral", string(celestial.DefaultSpectralType), "spectral class, one of OBAFGKM")
	fs.Float64Var(&f.luminosity, "luminosity", celestial.DefaultLuminosity, "luminosity, 1000 to 200000")
}

func addGasFlags(fs *pflag.FlagSet, f *bodyFlags) {
	fs.StringVar(&f.gas, "gas", "", "gas composition")
	fs.StringVar(&f.core, "core", "", "core composition")
	fs.Float64Var(&f.radiation, "radiation", 0, "radiation level")
}

func addIceFlags(fs *pflag.FlagSet, f *bodyFlags) {
	fs.StringVar(&f.ice, "ice", "", "ice composition")
}

func addDwarfFlags(fs *pflag.FlagSet, f *bodyFlags) {
	fs.StringVar(&f.surface, "surface", "", "surface composition")
}

// spectralRune returns the single spectral class character of s, or 0 so
// that the domain default applies.
func spectralRune(s string) rune {
	if utf8.RuneCountInString(s) != 1 {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// lookupSystem resolves a system name against the planetary registry. An
// empty name means no system.
func lookupSystem(a *app.App, name string) (*celestial.PlanetarySystem, error) {
	if name == "" {
		return nil, nil
	}
	system := a.Systems().ByName(name)
	if system == nil {
		return nil, fmt.Errorf("%s: %q", registry.MsgInvalidSystem, name)
	}
	return system, nil
}

func (f *bodyFlags) params(a *app.App) (celestial.BodyParams, error) {
	system, err := lookupSystem(a, f.system)
	if err != nil {
		return celestial.BodyParams{}, err
	}
	return celestial.BodyParams{Name: f.name, Mass: f.mass, Diameter: f.diameter, System: system}, nil
}

func (f *bodyFlags) planet() celestial.PlanetParams {
	return celestial.PlanetParams{AverageTemperature: f.temperature, SurfaceType: f.surfaceType, HasLiquidWater: f.water}
}

// build creates a body of kind from the flags.
func (f *bodyFlags) build(a *app.App, kind celestial.Kind) (celestial.Body, error) {
	params, err := f.params(a)
	if err != nil {
		return nil, err
	}
	ids := a.IDs()
	switch kind {
	case celestial.KindStar:
		return celestial.NewStar(ids, celestial.StarParams{
			BodyParams:    params,
			StellarParams: celestial.StellarParams{SpectralType: spectralRune(f.spectral), Luminosity: f.luminosity},
		}), nil
	case celestial.KindGasPlanet:
		return celestial.NewGasPlanet(ids, celestial.GasPlanetParams{
			BodyParams:      params,
			PlanetParams:    f.planet(),
			GasComposition:  f.gas,
			CoreComposition: f.core,
			RadiationLevel:  f.radiation,
		}), nil
	case celestial.KindIcePlanet:
		return celestial.NewIcePlanet(ids, celestial.IcePlanetParams{
			BodyParams:     params,
			PlanetParams:   f.planet(),
			IceComposition: f.ice,
		}), nil
	case celestial.KindDwarfPlanet:
		return celestial.NewDwarfPlanet(ids, celestial.DwarfPlanetParams{
			BodyParams:         params,
			PlanetParams:       f.planet(),
			SurfaceComposition: f.surface,
		}), nil
	}
	return nil, fmt.Errorf("%w: %v", celestial.ErrUnknownKind, kind)
}

// planetSetters is the setter surface shared by the three planet kinds.
type planetSetters interface {
	SetAverageTemperature(float64)
	SetSurfaceType(string)
	SetHasLiquidWater(bool)
}

// apply sets every changed flag on body. Values the domain rejects are
// ignored, as the setters do.
func (f *bodyFlags) apply(a *app.App, fs *pflag.FlagSet, body celestial.Body) error {
	changed := fs.Changed
	if changed("system") {
		system, err := lookupSystem(a, f.system)
		if err != nil {
			return err
		}
		body.SetSystem(system)
	}
	if changed("name") {
		body.SetName(f.name)
	}
	if changed("mass") {
		body.SetMass(f.mass)
	}
	if changed("diameter") {
		body.SetDiameter(f.diameter)
	}

	if p, ok := body.(planetSetters); ok {
		if changed("temperature") {
			p.SetAverageTemperature(f.temperature)
		}
		if changed("surface-type") {
			p.SetSurfaceType(f.surfaceType)
		}
		if changed("water") {
			p.SetHasLiquidWater(f.water)
		}
	}

	switch b := body.(type) {
	case *celestial.Star:
		if changed("spectral") {
			b.SetSpectralType(spectralRune(f.spectral))
		}
		if changed("luminosity") {
			b.SetLuminosity(f.luminosity)
		}
	case *celestial.GasPlanet:
		if changed("gas") {
			b.SetGasComposition(f.gas)
		}
		if changed("core") {
			b.SetCoreComposition(f.core)
		}
		if changed("radiation") {
			b.SetRadiationLevel(f.radiation)
		}
	case *celestial.IcePlanet:
		if changed("ice") {
			b.SetIceComposition(f.ice)
		}
	case *celestial.DwarfPlanet:
		if changed("surface") {
			b.SetSurfaceComposition(f.surface)
		}
	}
	return nil
}

// copyBody rebuilds body as a new value of the same kind with the same id,
// so an update replaces the stored body instead of editing it in place.
func copyBody(body celestial.Body) celestial.Body {
	params := celestial.BodyParams{
		Name:     body.Name(),
		Mass:     body.Mass(),
		Diameter: body.Diameter(),
		System:   body.System(),
	}
	planet := func(p planetGetters) celestial.PlanetParams {
		return celestial.PlanetParams{
			AverageTemperature: p.AverageTemperature(),
			SurfaceType:        p.SurfaceType(),
			HasLiquidWater:     p.HasLiquidWater(),
		}
	}
	switch b := body.(type) {
	case *celestial.Star:
		return celestial.RestoreStar(b.ID(), celestial.StarParams{
			BodyParams:    params,
			StellarParams: celestial.StellarParams{SpectralType: b.SpectralType(), Luminosity: b.Luminosity()},
		})
	case *celestial.GasPlanet:
		return celestial.RestoreGasPlanet(b.ID(), celestial.GasPlanetParams{
			BodyParams:      params,
			PlanetParams:    planet(b),
			GasComposition:  b.GasComposition(),
			CoreComposition: b.CoreComposition(),
			RadiationLevel:  b.RadiationLevel(),
		})
	case *celestial.IcePlanet:
		return celestial.RestoreIcePlanet(b.ID(), celestial.IcePlanetParams{
			BodyParams:     params,
			PlanetParams:   planet(b),
			IceComposition: b.IceComposition(),
		})
	case *celestial.DwarfPlanet:
		return celestial.RestoreDwarfPlanet(b.ID(), celestial.DwarfPlanetParams{
			BodyParams:         params,
			PlanetParams:       planet(b),
			SurfaceComposition: b.SurfaceComposition(),
		})
	}
	return body
}

type planetGetters interface {
	AverageTemperature() float64
	SurfaceType() string
	HasLiquidWater() bool
}

// kindFlags names the flags only some kinds accept, so update can refuse
// flags that would be silently dropped.
var kindFlags = map[string][]celestial.Kind{
	"temperature":  {celestial.KindGasPlanet, celestial.KindIcePlanet, celestial.KindDwarfPlanet},
	"surface-type": {celestial.KindGasPlanet, celestial.KindIcePlanet, celestial.KindDwarfPlanet},
	"water":        {celestial.KindGasPlanet, celestial.KindIcePlanet, celestial.KindDwarfPlanet},
	"spectral":     {celestial.KindStar},
	"luminosity":   {celestial.KindStar},
	"gas":          {celestial.KindGasPlanet},
	"core":         {celestial.KindGasPlanet},
	"radiation":    {celestial.KindGasPlanet},
	"ice":          {celestial.KindIcePlanet},
	"surface":      {celestial.KindDwarfPlanet},
}

func checkKindFlags(fs *pflag.FlagSet, kind celestial.Kind) error {
	for name, kinds := range kindFlags {
		if !fs.Changed(name) {
			continue
		}
		ok := false
		for _, k := range kinds {
			ok = ok || k == kind
		}
		if !ok {
			return fmt.Errorf("--%s does not apply to a %s", name, kind)
		}
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Manage celestial bodies",
}

// newAddCmd builds the add command for one kind.
func newAddCmd(use string, kind celestial.Kind, register ...func(*pflag.FlagSet, *bodyFlags)) *cobra.Command {
	f := &bodyFlags{}
	c := &cobra.Command{
		Use:   use,
		Short: "Add a " + kind.String(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, true, func(_ context.Context, a *app.App) error {
				body, err := f.build(a, kind)
				if err != nil {
					return err
				}
				a.Bodies().Add(body)
				return formatter(cmd).FormatMessage(fmt.Sprintf("Added %s %d: %s", kind, body.ID(), body.DisplayInfo()))
			})
		},
	}
	addCommonFlags(c.Flags(), f)
	for _, r := range register {
		r(c.Flags(), f)
	}
	_ = c.MarkFlagRequired("name")
	return c
}

var (
	deleteIndex int
	updateFlags = &bodyFlags{}
	listKind    string
)

var bodyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a celestial body by id, or by position with --index",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		byIndex := cmd.Flags().Changed("index")
		if byIndex == (len(args) == 1) {
			return fmt.Errorf("give either an id or --index")
		}
		return withCatalog(cmd, true, func(_ context.Context, a *app.App) error {
			var removed celestial.Body
			if byIndex {
				removed = a.Bodies().DeleteByIndex(deleteIndex)
				if removed == nil {
					return fmt.Errorf("no celestial body at index %d", deleteIndex)
				}
			} else {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				removed = a.Bodies().DeleteByID(id)
				if removed == nil {
					return fmt.Errorf("no celestial body with id %d", id)
				}
			}
			return formatter(cmd).FormatMessage(fmt.Sprintf("Deleted %s %d: %s", removed.Kind(), removed.ID(), removed.Name()))
		})
	},
}

var bodyUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a celestial body",
	Long: `Change fields of a celestial body. Only the flags given are applied.

Values outside the allowed ranges are ignored and the field keeps its
previous value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withCatalog(cmd, true, func(_ context.Context, a *app.App) error {
			body := a.Bodies().ByID(id)
			if body == nil {
				return fmt.Errorf("no celestial body with id %d", id)
			}
			if err := checkKindFlags(cmd.Flags(), body.Kind()); err != nil {
				return err
			}
			replacement := copyBody(body)
			if err := updateFlags.apply(a, cmd.Flags(), replacement); err != nil {
				return err
			}
			if !a.Bodies().Update(id, replacement) {
				return fmt.Errorf("celestial body %d could not be updated", id)
			}
			return formatter(cmd).FormatBody(presentation.FromBody(a.Bodies().IndexOfID(id), replacement), replacement.String())
		})
	},
}

var bodyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List celestial bodies, optionally of one kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
			reg := a.Bodies()
			var title, text string
			switch listKind {
			case "":
				title, text = "Celestial bodies", reg.ListAll()
			case "star":
				title, text = "Stars", reg.ListStars()
			case "gas":
				title, text = "Gas planets", reg.ListGasPlanets()
			case "ice":
				title, text = "Ice planets", reg.ListIcePlanets()
			case "dwarf":
				title, text = "Dwarf planets", reg.ListDwarfPlanets()
			default:
				return fmt.Errorf("unknown kind %q: use star, gas, ice or dwarf", listKind)
			}
			return formatter(cmd).FormatListing(presentation.NewListing(title, text))
		})
	},
}

var bodyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of a celestial body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
			body := a.Bodies().ByID(id)
			if body == nil {
				return fmt.Errorf("no celestial body with id %d", id)
			}
			return formatter(cmd).FormatBody(presentation.FromBody(a.Bodies().IndexOfID(id), body), body.String())
		})
	},
}

func init() {
	bodyDeleteCmd.Flags().IntVar(&deleteIndex, "index", 0, "position in the catalog instead of an id")

	fs := bodyUpdateCmd.Flags()
	addCommonFlags(fs, updateFlags)
	addPlanetFlags(fs, updateFlags)
	addStarFlags(fs, updateFlags)
	addGasFlags(fs, updateFlags)
	addIceFlags(fs, updateFlags)
	addDwarfFlags(fs, updateFlags)

	bodyListCmd.Flags().StringVar(&listKind, "kind", "", "only list one kind: star, gas, ice or dwarf")

	bodyCmd.AddCommand(
		newAddCmd("add-star", celestial.KindStar, addStarFlags),
		newAddCmd("add-gas", celestial.KindGasPlanet, addPlanetFlags, addGasFlags),
		newAddCmd("add-ice", celestial.KindIcePlanet, addPlanetFlags, addIceFlags),
		newAddCmd("add-dwarf", celestial.KindDwarfPlanet, addPlanetFlags, addDwarfFlags),
		bodyDeleteCmd,
		bodyUpdateCmd,
		bodyListCmd,
		bodyShowCmd,
	)
	rootCmd.AddCommand(bodyCmd)
}
