package alerts

// Mailer envía una notificación al canal de correo administrativo.
// La entrega es best-effort: un fallo se registra en el log y jamás aborta
// el escaneo ni revierte la inserción de la notificación.
type Mailer interface {
	Send(subject, body string) error
}
