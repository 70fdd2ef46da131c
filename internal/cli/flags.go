package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/service/store"
)

// inputLayouts are the accepted time formats; the local layouts are read
// in the local zone.
var inputLayouts = []string{time.RFC3339, "2006-01-02 15:04", timeLayout}

func parseTime(s string) (time.Time, error) {
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad time %q, want RFC3339 or %q", apperr.ErrInvalid, s, timeLayout)
}

// parseCollector reads "Surname FirstName [LastName]".
func parseCollector(s string) domain.CollectorName {
	parts := strings.Fields(s)
	var n domain.CollectorName
	if len(parts) > 0 {
		n.Surname = parts[0]
	}
	if len(parts) > 1 {
		n.FirstName = parts[1]
	}
	if len(parts) > 2 {
		n.LastName = strings.Join(parts[2:], " ")
	}
	return n
}

type serviceResolver interface {
	ResolveServices(ctx context.Context, names []string) ([]int64, error)
}

type deliveryFlags struct {
	vehicleModel  string
	vehicleNumber string
	packageType   string
	status        string
	from          string
	to            string
	distance      float64
	departure     string
	arrival       string
	travelTime    string
	services      []string
	techState     string
	collector     string
	comment       string
	mediaFile     string
	logFile       string
}

func (f *deliveryFlags) bind(fs *pflag.FlagSet, withFiles bool) {
	fs.StringVar(&f.vehicleModel, "vehicle-model", "", "transport model name")
	fs.StringVar(&f.vehicleNumber, "vehicle-number", "", "transport number")
	fs.StringVar(&f.packageType, "package", "", "package type name")
	fs.StringVar(&f.status, "status", "", "delivery status name")
	fs.StringVar(&f.from, "from", "", "departure location, address or \"(lat, lon)\"")
	fs.StringVar(&f.to, "to", "", "destination location")
	fs.Float64Var(&f.distance, "distance", 0, "distance in km")
	fs.StringVar(&f.departure, "departure", "", "departure time")
	fs.StringVar(&f.arrival, "arrival", "", "delivery time")
	fs.StringVar(&f.travelTime, "travel-time", "", "travel time HH:MM:SS, computed from the times when empty")
	fs.StringArrayVar(&f.services, "service", nil, "service name, repeatable")
	fs.StringVar(&f.techState, "tech-state", "", "technical condition")
	fs.StringVar(&f.collector, "collector", "", "collector as \"Surname FirstName LastName\"")
	fs.StringVar(&f.comment, "comment", "", "collector comment")
	if withFiles {
		fs.StringVar(&f.mediaFile, "media-file", "", "path of a media file to attach")
		fs.StringVar(&f.logFile, "logfile", "", "path of a log file to attach")
	}
}

// apply copies the flags that were set onto d.
func (f *deliveryFlags) apply(ctx context.Context, fs *pflag.FlagSet, refs serviceResolver, d *domain.Delivery) error {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("vehicle-model", &d.VehicleModel, f.vehicleModel)
	set("vehicle-number", &d.VehicleNumber, f.vehicleNumber)
	set("package", &d.PackageType, f.packageType)
	set("status", &d.Status, f.status)
	set("from", &d.FromLocation, f.from)
	set("to", &d.ToLocation, f.to)
	set("tech-state", &d.TechnicalState, f.techState)
	set("comment", &d.CollectorComment, f.comment)
	if fs.Changed("distance") {
		if f.distance < 0 {
			return fmt.Errorf("%w: distance must not be negative", apperr.ErrInvalid)
		}
		d.Distance = f.distance
	}
	if fs.Changed("departure") {
		t, err := parseTime(f.departure)
		if err != nil {
			return err
		}
		d.DepartureTime = t
	}
	if fs.Changed("arrival") {
		t, err := parseTime(f.arrival)
		if err != nil {
			return err
		}
		d.DeliveryTime = t
	}
	if fs.Changed("travel-time") {
		minutes, err := domain.ParseTravelTime(f.travelTime)
		if err != nil {
			return err
		}
		d.Duration = minutes
	}
	if fs.Changed("collector") {
		d.CollectorName = parseCollector(f.collector)
		d.CollectorNameDisplay = d.CollectorName.Display()
	}
	if fs.Changed("service") {
		ids, err := refs.ResolveServices(ctx, f.services)
		if err != nil {
			return err
		}
		d.Services = d.Services[:0]
		for i, id := range ids {
			d.Services = append(d.Services, domain.Service{ID: id, Name: f.services[i]})
		}
	}
	return nil
}

func (f *deliveryFlags) attachments() (store.Attachments, func(), error) {
	var files store.Attachments
	var opened []*os.File
	closeAll := func() {
		for _, file := range opened {
			_ = file.Close()
		}
	}
	open := func(path string) (*store.Attachment, error) {
		if path == "" {
			return nil, nil
		}
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open attachment: %w", err)
		}
		opened = append(opened, file)
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return &store.Attachment{Name: filepath.Base(path), ContentType: contentType, Content: file}, nil
	}

	var err error
	if files.MediaFile, err = open(f.mediaFile); err != nil {
		closeAll()
		return store.Attachments{}, nil, err
	}
	if files.LogFile, err = open(f.logFile); err != nil {
		closeAll()
		return store.Attachments{}, nil, err
	}
	return files, closeAll, nil
}

type processFlags struct {
	deliveryFlags
}

func (f *processFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "departure location")
	fs.StringVar(&f.to, "to", "", "destination location")
	fs.Float64Var(&f.distance, "distance", 0, "distance in km")
	fs.StringVar(&f.departure, "departure", "", "departure time")
	fs.StringVar(&f.arrival, "arrival", "", "delivery time")
	fs.StringVar(&f.travelTime, "travel-time", "", "travel time HH:MM:SS")
	fs.StringVar(&f.techState, "tech-state", "", "technical condition")
	fs.StringVar(&f.collector, "collector", "", "collector as \"Surname FirstName LastName\"")
	fs.StringVar(&f.comment, "comment", "", "collector comment")
}

// fields returns the edits sent with the processed flag, nil when no flag
// was given.
func (f *processFlags) fields(fs *pflag.FlagSet) (*store.ProcessFields, error) {
	if fs.NFlag() == 0 {
		return nil, nil
	}
	var pf store.ProcessFields
	str := func(name, v string) *string {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}
	pf.FromLocation = str("from", f.from)
	pf.ToLocation = str("to", f.to)
	pf.TechnicalState = str("tech-state", f.techState)
	pf.CollectorComment = str("comment", f.comment)
	if fs.Changed("distance") {
		if f.distance < 0 {
			return nil, fmt.Errorf("%w: distance must not be negative", apperr.ErrInvalid)
		}
		pf.Distance = &f.distance
	}
	if fs.Changed("departure") {
		t, err := parseTime(f.departure)
		if err != nil {
			return nil, err
		}
		pf.DepartureTime = &t
	}
	if fs.Changed("arrival") {
		t, err := parseTime(f.arrival)
		if err != nil {
			return nil, err
		}
		pf.DeliveryTime = &t
	}
	if fs.Changed("travel-time") {
		minutes, err := domain.ParseTravelTime(f.travelTime)
		if err != nil {
			return nil, err
		}
		pf.Duration = &minutes
	}
	if fs.Changed("collector") {
		n := parseCollector(f.collector)
		pf.CollectorName = &n
	}
	return &pf, nil
}
