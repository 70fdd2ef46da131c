package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/service/reference"
)

const timeLayout = "02.01.2006 15:04"

func runLogin(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("login")
	username := fs.StringP("username", "u", "", "backend user")
	password := fs.String("password", "", "password, read from stdin when empty")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if *username == "" {
		return errUsage
	}
	if *password == "" {
		line, err := bufio.NewReader(e.stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}
	if err := e.Auth.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "logged in")
	return nil
}

func runLogout(ctx context.Context, e *env, args []string) error {
	if _, err := parse(newFlagSet("logout"), args, 0); err != nil {
		return err
	}
	if err := e.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "logged out")
	return nil
}

func runStatus(ctx context.Context, e *env, args []string) error {
	if _, err := parse(newFlagSet("status"), args, 0); err != nil {
		return err
	}
	ok, err := e.Auth.IsAuthenticated(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(e.out, "authenticated")
	} else {
		fmt.Fprintln(e.out, "not authenticated")
	}
	return nil
}

func runList(_ context.Context, e *env, args []string) error {
	if _, err := parse(newFlagSet("list"), args, 0); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVEHICLE\tNUMBER\tSTATUS\tFROM\tTO\tDEPARTURE\tTRAVEL\tPROCESSED")
	for _, d := range e.Store.Deliveries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.VehicleModel, d.VehicleNumber, d.Status, d.FromLocation, d.ToLocation,
			formatTime(d.DepartureTime),
			domain.FormatTravelTime(d.TransitMinutes()),
			yesNo(d.IsProcessed),
		)
	}
	return tw.Flush()
}

func runShow(_ context.Context, e *env, args []string) error {
	rest, err := parse(newFlagSet("show"), args, 1)
	if err != nil {
		return err
	}
	d, err := e.Store.Delivery(rest[0])
	if err != nil {
		return err
	}
	printDelivery(e.out, d)
	return nil
}

func runCreate(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("create")
	var f deliveryFlags
	f.bind(fs, true)
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	var draft domain.Delivery
	if err := f.apply(ctx, fs, e.Refs, &draft); err != nil {
		return err
	}
	if err := draft.ValidateTimes(); err != nil {
		return err
	}
	files, closeFiles, err := f.attachments()
	if err != nil {
		return err
	}
	defer closeFiles()

	if err := e.Store.CreateDelivery(ctx, draft, files); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "created, %d deliveries\n", len(e.Store.Deliveries()))
	return nil
}

func runUpdate(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("update")
	var f deliveryFlags
	f.bind(fs, false)
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	d, err := e.Store.Delivery(rest[0])
	if err != nil {
		return err
	}
	if err := f.apply(ctx, fs, e.Refs, &d); err != nil {
		return err
	}
	if !d.DepartureTime.IsZero() && !d.DeliveryTime.IsZero() {
		if err := d.ValidateTimes(); err != nil {
			return err
		}
	}
	if err := e.Store.UpdateDelivery(ctx, d); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "updated %s\n", d.ID)
	return nil
}

func runDelete(ctx context.Context, e *env, args []string) error {
	rest, err := parse(newFlagSet("delete"), args, 1)
	if err != nil {
		return err
	}
	if err := e.Store.DeleteDelivery(ctx, rest[0]); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "deleted %s\n", rest[0])
	return nil
}

func runProcess(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("process")
	var f processFlags
	f.bind(fs)
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	fields, err := f.fields(fs)
	if err != nil {
		return err
	}
	if err := e.Store.ProcessDelivery(ctx, rest[0], fields); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "processed %s\n", rest[0])
	return nil
}

func runUnprocess(ctx context.Context, e *env, args []string) error {
	rest, err := parse(newFlagSet("unprocess"), args, 1)
	if err != nil {
		return err
	}
	if err := e.Store.UnprocessDelivery(ctx, rest[0]); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "unprocessed %s\n", rest[0])
	return nil
}

func runExport(_ context.Context, e *env, args []string) error {
	fs := newFlagSet("export")
	output := fs.StringP("output", "o", "deliveries.xlsx", "output file")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	deliveries := e.Store.Deliveries()
	data, err := e.Export.Generate(deliveries, e.now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(e.out, "exported %d deliveries to %s\n", len(deliveries), *output)
	return nil
}

func runReference(ctx context.Context, e *env, args []string) error {
	rest, err := parse(newFlagSet("reference"), args, 1)
	if err != nil {
		return err
	}
	list, err := e.Refs.List(ctx, reference.Kind(rest[0]))
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	switch l := list.(type) {
	case []domain.TransportModel:
		printNamed(tw, l)
	case []domain.PackageType:
		printNamed(tw, l)
	case []domain.ServiceCategory:
		printNamed(tw, l)
	case []domain.DeliveryStatus:
		printNamed(tw, l)
	case []domain.TechnicalCondition:
		printNamed(tw, l)
	case []domain.CargoType:
		printNamed(tw, l)
	case []domain.Service:
		for _, s := range l {
			category := ""
			if s.Category != nil {
				category = s.Category.Title
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", s.ID, s.Name, category)
		}
	case []domain.Location:
		for _, loc := range l {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", loc.ID, loc.From, loc.To,
				strconv.FormatFloat(loc.DistanceKm, 'f', -1, 64))
		}
	default:
		return fmt.Errorf("unsupported reference list %T", list)
	}
	return tw.Flush()
}

func printNamed[T domain.Named](w io.Writer, list []T) {
	for _, item := range list {
		fmt.Fprintf(w, "%d\t%s\n", item.RefID(), item.RefLabel())
	}
}

func printDelivery(w io.Writer, d domain.Delivery) {
	services := make([]string, 0, len(d.Services))
	for _, s := range d.Services {
		services = append(services, s.Name)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"id", d.ID},
		{"vehicle", strings.TrimSpace(d.VehicleModel + " " + d.VehicleNumber)},
		{"package", d.PackageType},
		{"status", d.Status},
		{"from", d.FromLocation},
		{"to", d.ToLocation},
		{"distance", strconv.FormatFloat(d.Distance, 'f', -1, 64)},
		{"departure", formatTime(d.DepartureTime)},
		{"arrival", formatTime(d.DeliveryTime)},
		{"travel time", domain.FormatTravelTime(d.TransitMinutes())},
		{"services", strings.Join(services, ", ")},
		{"technical state", d.TechnicalState},
		{"collector", d.CollectorNameDisplay},
		{"comment", d.CollectorComment},
		{"processed", yesNo(d.IsProcessed)},
	}
	if d.MediaFile != nil {
		rows = append(rows, [2]string{"media file", d.MediaFile.URI})
	}
	if d.LogFile != nil {
		rows = append(rows, [2]string{"log file", d.LogFile.URI})
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	_ = tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
