package config

// Profile holds the values compiled in for one router deployment. Every
// other path is derived from these in derive().
type Profile struct {
	// AppName is the router program name.
	AppName string

	// AppHome is the deployment root directory.
	AppHome string

	// WarehouseDjango is the warehouse django library directory.
	WarehouseDjango string

	// SettingsModule is the settings module the router loads.
	SettingsModule string

	// WarehouseConfigName is the file under <AppHome>/conf exported as APP_CONFIG.
	WarehouseConfigName string
}

const (
	// DefaultAppName is the profile used when the binary is built without
	// an application name.
	DefaultAppName = "router_accessdb-usermap"

	defaultAppHome             = "/soft/warehouse-apps-1.0/Manage-XCDB"
	defaultWarehouseDjango     = "/soft/warehouse-1.0/PROD/django_xsede_warehouse"
	defaultSettingsModule      = "xsede_warehouse.settings"
	defaultWarehouseConfigName = "django_xsede_warehouse.conf"
	defaultLogLevel            = "info"
)

// profiles lists the router deployments this launcher is built for.
var profiles = map[string]Profile{
	"router_accessdb-usermap": newProfile("router_accessdb-usermap"),
	"router_accessdb-persons": newProfile("router_accessdb-persons"),
	"router_accessdb-fos":     newProfile("router_accessdb-fos"),
	"route_xdcdb-users":       newProfile("route_xdcdb-users"),
	"route_xdcdb-persons":     newProfile("route_xdcdb-persons"),
}

func newProfile(name string) Profile {
	return Profile{
		AppName:             name,
		AppHome:             defaultAppHome,
		WarehouseDjango:     defaultWarehouseDjango,
		SettingsModule:      defaultSettingsModule,
		WarehouseConfigName: defaultWarehouseConfigName,
	}
}

// LookupProfile returns the compiled profile for name. Unknown names get
// a profile built from the shared defaults, so a launcher built for a new
// router still resolves every path; ok reports whether name was known.
func LookupProfile(name string) (p Profile, ok bool) {
	if name == "" {
		name = DefaultAppName
	}
	p, ok = profiles[name]
	if !ok {
		p = newProfile(name)
	}
	return p, ok
}
