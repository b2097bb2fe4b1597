// Package logconf assembles the logging configuration mapping installed by a
// managed Apache Airflow environment at startup. The mapping mirrors the
// dictionary shape consumed by Python's logging.config.dictConfig: handler
// name to handler parameters, logger name to logger parameters, plus
// formatters, filters, and the root logger.
//
// Build starts from the stock Airflow configuration and, for every log source
// whose CloudWatch log group is configured, registers the matching shipping
// handler and wires it into the right logger. The handler classes referenced
// by the mapping live on the host side; this package only decides which of
// them to register and with what parameters.
package logconf
