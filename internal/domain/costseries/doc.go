// Package costseries implementa o pipeline puro de custos: normalização dos registros
// do Cost Explorer, junção das duas contas por data, coerção numérica segundo a política
// de períodos ausentes, resample diário para semanal e formatação monetária.
//
// Nenhuma função deste pacote faz I/O ou altera a tabela recebida.
package costseries
