package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vet-clinic-records/internal/domain/clinic"

	"github.com/shopspring/decimal"
)

// errQuit corta la sesión cuando se acaba la entrada.
var errQuit = errors.New("input closed")

// CLI es el menú interactivo de recepción. Ningún error de dominio es fatal:
// se informa y se vuelve al menú.
type CLI struct {
	svc *clinic.Service
	in  *bufio.Scanner
	out io.Writer
}

func New(svc *clinic.Service, in io.Reader, out io.Writer) *CLI {
	return &CLI{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Run muestra el menú hasta que se elige 7 o se cierra la entrada.
func (c *CLI) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.println("\nMenu:")
		c.println("1. Create an animal record")
		c.println("2. Add appointment")
		c.println("3. Get medical history")
		c.println("4. Pay for an appointment")
		c.println("5. Add note to an animal record")
		c.println("6. Close an appointment")
		c.println("7. Exit")

		choice, err := c.prompt("Enter your choice: ")
		if err != nil {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.createRecord(ctx)
		case "2":
			err = c.addAppointment(ctx)
		case "3":
			err = c.medicalHistory(ctx)
		case "4":
			err = c.pay(ctx)
		case "5":
			err = c.addNote(ctx)
		case "6":
			err = c.closeAppointment(ctx)
		case "7":
			return nil
		default:
			c.println("Incorrect menu item, please try again.")
		}
		if errors.Is(err, errQuit) {
			return nil
		}
	}
}

func (c *CLI) createRecord(ctx context.Context) error {
	animalType, err := c.prompt("Enter animal type: ")
	if err != nil {
		return err
	}
	name, err := c.prompt("Enter animal name: ")
	if err != nil {
		return err
	}

	var sex clinic.Sex
	for {
		raw, err := c.prompt("Enter animal sex (f for female, m for male): ")
		if err != nil {
			return err
		}
		if sex, err = clinic.ParseSex(raw); err == nil {
			break
		}
		c.println("Invalid option. Please enter 'f' for female or 'm' for male.")
	}

	birthday, err := c.prompt("Enter animal birthday (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	breed, err := c.prompt("Enter animal breed (if applicable): ")
	if err != nil {
		return err
	}
	contact, err := c.prompt("Enter contact person: ")
	if err != nil {
		return err
	}
	phone, err := c.prompt("Enter phone number: ")
	if err != nil {
		return err
	}

	bd, err := clinic.ParseDate(birthday)
	if err != nil {
		c.println("Invalid date format. Please enter the date in YYYY-MM-DD format.")
		return nil
	}

	rec, err := c.svc.CreateRecord(ctx, clinic.RecordInput{
		AnimalType:    animalType,
		Name:          name,
		Sex:           sex,
		Birthday:      bd,
		Breed:         breed,
		ContactPerson: contact,
		PhoneNumber:   phone,
	})
	if err != nil {
		c.reportError(err)
		return nil
	}
	c.printf("Animal record created with ID: %d\n", rec.ID)
	return nil
}

func (c *CLI) addAppointment(ctx context.Context) error {
	if c.svc.OpenSlots() <= 0 {
		c.println("No open slots available for appointments.")
		return nil
	}

	rec, ok, err := c.askRecord(ctx)
	if err != nil || !ok {
		return err
	}

	raw, err := c.prompt("Enter appointment date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	date, err := clinic.ParseDate(raw)
	if err != nil {
		c.println("Invalid date format. Please enter the date in YYYY-MM-DD format.")
		return nil
	}

	entries := c.svc.Services()
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.Key] = true
	}

	var keys []string
	for {
		c.println("\nServices:")
		for _, e := range entries {
			c.printf("%s. %s - %d GEL\n", e.Key, e.Name, e.Price)
		}
		choice, err := c.prompt("Choose a service by number (or 'done' to finish): ")
		if err != nil {
			return err
		}
		choice = strings.TrimSpace(choice)
		if strings.EqualFold(choice, "done") {
			break
		}
		if !known[choice] {
			c.println("Invalid choice, please try again.")
			continue
		}
		keys = append(keys, choice)
	}

	if _, err := c.svc.AddAppointment(ctx, rec.ID, date, keys); err != nil {
		c.reportError(err)
		return nil
	}
	c.println("Appointment added.")
	return nil
}

func (c *CLI) medicalHistory(ctx context.Context) error {
	rec, ok, err := c.askRecord(ctx)
	if err != nil || !ok {
		return err
	}

	loc, err := c.svc.ExportHistory(ctx, rec.ID)
	if err != nil {
		c.reportError(err)
		return nil
	}
	c.println("Medical history saved to " + loc)
	return nil
}

func (c *CLI) addNote(ctx context.Context) error {
	rec, ok, err := c.askRecord(ctx)
	if err != nil || !ok {
		return err
	}

	text, err := c.prompt("Enter note: ")
	if err != nil {
		return err
	}
	if err := c.svc.AddNote(ctx, rec.ID, text); err != nil {
		c.reportError(err)
		return nil
	}
	c.println("Note added.")
	return nil
}

func (c *CLI) pay(ctx context.Context) error {
	rec, ok, err := c.askRecord(ctx)
	if err != nil || !ok {
		return err
	}

	c.println("Appointments:")
	for _, a := range rec.Appointments {
		if !a.IsOpen() {
			continue
		}
		c.printf("ID: %d, Date: %s, Services: %s, Cost: %d, Payment Status: %s, Amount Left to Pay: %s\n",
			a.ID, a.Date.Format(clinic.DateLayout), a.ServiceNames(), a.Cost, a.PaymentStatus().Label(), a.Remaining())
	}

	apptID, ok, err := c.askInt("Enter the appointment ID to pay for: ")
	if err != nil || !ok {
		return err
	}

	// Se releen los montos: la ficha pudo cambiar desde el listado.
	a, err := c.svc.Appointment(ctx, rec.ID, apptID)
	if err != nil {
		c.reportError(err)
		return nil
	}
	if a.PaymentStatus() == clinic.PaymentFullyPaid {
		c.println("This appointment is already fully paid.")
		return nil
	}
	c.printf("Total cost is $%d. Amount already paid is $%s. Amount left to pay is $%s.\n",
		a.Cost, a.AmountPaid, a.Remaining())

	raw, err := c.prompt("Enter payment amount: ")
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		c.println("Invalid amount. Please enter a numeric value.")
		return nil
	}

	res, err := c.svc.Pay(ctx, rec.ID, apptID, amount)
	if err != nil {
		c.reportError(err)
		return nil
	}
	if res.PaymentStatus == clinic.PaymentFullyPaid {
		c.println("Payment successful. Appointment fully paid.")
		return nil
	}
	c.printf("Payment successful. $%s paid, $%s remaining.\n", amount, res.Remaining)
	return nil
}

func (c *CLI) closeAppointment(ctx context.Context) error {
	rec, ok, err := c.askRecord(ctx)
	if err != nil || !ok {
		return err
	}

	c.println("Appointments:")
	for _, a := range rec.Appointments {
		c.printf("ID: %d, Date: %s, Services: %s, Cost: %d, Status: %s, Payment Status: %s\n",
			a.ID, a.Date.Format(clinic.DateLayout), a.ServiceNames(), a.Cost, a.Status, a.PaymentStatus().Label())
	}

	apptID, ok, err := c.askInt("Enter the appointment ID to close: ")
	if err != nil || !ok {
		return err
	}
	if _, err := c.svc.Close(ctx, rec.ID, apptID); err != nil {
		c.reportError(err)
		return nil
	}
	c.println("Appointment closed.")
	return nil
}

// askRecord pide un id y devuelve la ficha. ok=false si ya se informó el problema.
func (c *CLI) askRecord(ctx context.Context) (clinic.AnimalRecord, bool, error) {
	id, ok, err := c.askInt("Enter animal ID: ")
	if err != nil || !ok {
		return clinic.AnimalRecord{}, false, err
	}
	rec, err := c.svc.Record(ctx, id)
	if err != nil {
		c.reportError(err)
		return clinic.AnimalRecord{}, false, nil
	}
	return rec, true, nil
}

func (c *CLI) askInt(label string) (int, bool, error) {
	raw, err := c.prompt(label)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.println("Invalid ID. Please enter a number.")
		return 0, false, nil
	}
	return n, true, nil
}

func (c *CLI) reportError(err error) {
	switch {
	case errors.Is(err, clinic.ErrRecordNotFound):
		c.println("Record not found.")
	case errors.Is(err, clinic.ErrAppointmentNotFound):
		c.println("Appointment not found.")
	case errors.Is(err, clinic.ErrCapacityExceeded):
		c.println("No open slots available for appointments.")
	case errors.Is(err, clinic.ErrAlreadyFullyPaid):
		c.println("This appointment is already fully paid.")
	case errors.Is(err, clinic.ErrPaymentExceedsBalance):
		c.println("Error: " + err.Error() + ".")
	case errors.Is(err, clinic.ErrInvalidAmount):
		c.println("Invalid amount. Please enter a non-negative value.")
	default:
		c.println("Error: " + err.Error())
	}
}

func (c *CLI) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		c.println("")
		return "", errQuit
	}
	return c.in.Text(), nil
}

func (c *CLI) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
