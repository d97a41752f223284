package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAuthorization indica que a role da conta de tenants não pôde ser assumida.
	ErrAuthorization = errors.New("authorization error")
	// ErrDataSource indica falha na chamada ao Cost Explorer ou payload malformado.
	ErrDataSource = errors.New("cost data source error")
	// ErrMalformedRecord indica um registro de custo que não pôde ser interpretado.
	ErrMalformedRecord = errors.New("malformed cost record")
	// ErrIncompleteCoverage indica período presente em apenas uma das contas.
	ErrIncompleteCoverage = errors.New("incomplete cost coverage")
	// ErrDelivery indica falha de rede ou de autenticação ao entregar o relatório.
	ErrDelivery = errors.New("report delivery error")
	// ErrConfiguration indica configuração ausente ou inválida.
	ErrConfiguration = errors.New("configuration error")
	// ErrRender indica tabela malformada na renderização do relatório.
	ErrRender = errors.New("report render error")
)

// MalformedRecordError describes a single cost record that could not be parsed.
type MalformedRecordError struct {
	Account string
	Index   int
	Field   string
	Value   string
	Err     error
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("%s: %s record %d: invalid %s %q", ErrMalformedRecord, e.Account, e.Index, e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// IncompleteCoverageError reports a period that one account has and the other does not.
type IncompleteCoverageError struct {
	Period         time.Time
	MissingAccount string
	Granularity    string
}

func (e *IncompleteCoverageError) Error() string {
	return fmt.Sprintf("%s: %s has no %s amount for period %s (amortized data may not be settled yet)",
		ErrIncompleteCoverage, e.MissingAccount, e.Granularity, e.Period.Format("2006-01-02"))
}

func (e *IncompleteCoverageError) Is(target error) bool { return target == ErrIncompleteCoverage }
