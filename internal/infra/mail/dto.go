package mail

type ImportReportData struct {
	BatchID        string
	TotalProcessed int
	Created        int
	Updated        int
	Failed         int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
