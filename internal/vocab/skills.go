package vocab

// defaultSkills is the closed IT skill vocabulary. Entries are stored lowercase;
// the miner lowercases the text before matching.
var defaultSkills = []string{
	// languages
	"python", "java", "c++", "c#", "golang", "php", "ruby", "swift", "kotlin", "typescript",
	"javascript", "html", "css", "r", "dart", "matlab", "scala", "rust", "shell", "bash", "perl", "lua", "assembly",

	// frameworks and libraries
	"react", "angular", "vue", "node.js", "django", "flask", "spring boot", "laravel", "codeigniter",
	"flutter", "react native", "next.js", "nuxt.js", "express.js", "pandas", "numpy", "tensorflow",
	"pytorch", "keras", "scikit-learn", "dotnet", ".net", "jquery", "bootstrap", "tailwind", "fastapi", "hibernate",

	// databases
	"sql", "mysql", "postgresql", "mongodb", "oracle", "redis", "firebase", "elasticsearch",
	"sql server", "mariadb", "sqlite", "cassandra", "dynamodb", "couchdb", "neo4j", "hbase", "realm",

	// cloud and devops
	"aws", "azure", "google cloud", "gcp", "docker", "kubernetes", "jenkins", "terraform",
	"git", "github", "gitlab", "bitbucket", "linux", "unix", "ubuntu", "centos", "redhat", "nginx", "apache",
	"ci/cd", "ansible", "circleci", "prometheus", "grafana", "elk stack", "openshift", "helm", "vagrant",
	"cloud computing",

	// data and ai
	"snowflake", "bigquery", "redshift", "databricks", "azure synapse", "teradata", "vertica",
	"airflow", "dbt", "luigi", "prefect", "glue", "athena", "kinesis", "kafka", "rabbitmq", "pub/sub",
	"tableau", "power bi", "looker", "qlikview", "qlik sense", "sas", "spss", "excel", "google data studio",
	"big data", "hadoop", "spark", "pyspark", "hive", "pig", "impala", "flink",
	"machine learning", "deep learning", "nlp", "computer vision", "generative ai", "llm",
	"hugging face", "openai", "langchain", "mlflow", "kubeflow", "sagemaker", "vertex ai",
	"jupyter", "colab", "opencv", "yolo", "ocr", "artificial intelligence", "data science",

	// networking certifications
	"ccna", "ccnp", "ccie", "ccdp", "ccde", "ccar",
	"jncia", "jncis", "jncip", "jncie",
	"mtcna", "mtcre", "mtcine",
	"nse1", "nse2", "nse3", "nse4", "nse7", "nse8",
	"pcnsa", "pcnse",
	"comptia network+", "comptia security+", "cissp", "cism", "ceh", "oscp", "cisa",

	// networking
	"tcp/ip", "dns", "dhcp", "bgp", "ospf", "eigrp", "rip", "mpls", "vlan", "vxlan", "sd-wan",
	"vpn", "ipsec", "ssl/tls", "stp", "rstp", "nat", "pat", "qos", "ipv4", "ipv6", "subnetting",
	"routing", "switching", "osi model", "voip", "sip", "wan", "lan", "wlan", "man",
	"cisco", "juniper", "mikrotik", "fortinet", "palo alto", "aruba", "ubiquiti", "unifi",
	"f5", "citrix", "arista", "ruckus", "tplink", "huawei", "dell networking", "barracuda",
	"wireshark", "packet tracer", "gns3", "eve-ng", "nmap", "solarwinds", "prtg", "nagios",
	"zabbix", "cacti", "netcat", "tcpdump", "iperf", "putty", "crt", "winbox", "ping", "traceroute",

	// security
	"cybersecurity", "cyber security", "network security", "penetration testing", "firewall",
	"next-gen firewall", "ngfw", "ids", "ips", "siem", "splunk", "wazuh", "nessus", "metasploit",
	"burp suite", "kalilinux", "soc", "incident response", "forensics", "zero trust", "waf", "ddos protection",
	"blockchain",

	// iot and hardware
	"iot", "arduino", "raspberry pi", "embedded systems", "microcontroller", "mqtt", "coap",
	"fpga", "plc", "scada", "hmi", "pcb", "stm32", "esp32", "esp8266", "verilog", "vhdl",

	// tools and methods
	"jira", "trello", "asana", "confluence", "notion",
	"agile", "scrum", "kanban", "waterfall", "sdlc", "devops",
	"qa", "selenium", "appium", "cypress", "junit", "postman", "soapui",
	"figma", "adobe xd", "sketch", "invision", "zeplin",

	// roles and disciplines
	"sales", "marketing", "business analyst", "project manager", "product manager", "ui/ux", "graphic design",
}

// defaultSpecial holds entries a plain word-boundary match cannot find: single
// letters, names that start or end with punctuation, and spelling variants.
var defaultSpecial = []SkillPattern{
	{Skill: "c", Pattern: `(^|[^a-z0-9_+#.\-/])c($|[^a-z0-9_+#])`},
	{Skill: "go", Pattern: `\bgo\b`},
	{Skill: ".net", Pattern: `\.net\b`},
	{Skill: "c#", Pattern: `(^|[^a-z0-9_])c#`},
	{Skill: "c++", Pattern: `(^|[^a-z0-9_])c\+\+`},
	{Skill: "node.js", Pattern: `\bnode\.?js\b`},
	{Skill: "react native", Pattern: `\breact\s+native\b`},
	{Skill: "vue.js", Pattern: `\bvue\.js\b|\bvuejs\b`},
}
