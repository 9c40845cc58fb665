package services

// securityTopics returns the advice catalogue. Responses branch on
// privilege: SECURITY and ADMIN get operational runbooks, everyone
// else gets end-user guidance.
func securityTopics() []securityTopic {
	return []securityTopic{
		{
			id:       "account_hacked",
			keywords: []string{"hacked", "compromised", "breach", "someone accessed", "unauthorized access", "account taken", "hijacked", "break in", "broken into"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Account Compromise Response Protocol**

**Immediate Actions:**
1. **DISABLE** the compromised account in Active Directory
2. **REVOKE** all active sessions and tokens
3. **AUDIT** recent login history and IP addresses
4. **CHECK** for lateral movement to other systems
5. **PRESERVE** logs for forensic analysis

**Recovery:**
• Force password reset with complexity requirements
• Enable MFA before re-enabling account
• Monitor for 30 days post-incident`
				}
				return `**Your Account May Be Compromised - Take Action Now**

1. **CHANGE** your password immediately from a trusted device
2. **ENABLE** Two-Factor Authentication (2FA)
3. **CHECK** your recent login activity for unfamiliar locations
4. **REPORT** this incident using the Submit Report form
5. **LOG OUT** of all other sessions

Do NOT use the same password anywhere else!`
			},
		},
		{
			id:       "password_security",
			keywords: []string{"password", "credential", "login", "strong password", "password exposed", "password leak", "credential reuse", "same password"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Password Security Best Practices (Admin)**

**Policy Enforcement:**
• Minimum 12 characters with complexity
• Password history of 24 previous passwords
• Maximum age: 90 days
• Account lockout after 5 failed attempts

**Detection:**
• Monitor for credential stuffing patterns
• Check Have I Been Pwned integration
• Alert on password spray attacks`
				}
				return `**Creating Strong Passwords**

**DO:**
* Use 12+ characters mixing letters, numbers, symbols
* Use a unique password for each account
* Consider using a password manager
* Enable 2FA wherever possible

**DON'T:**
* Use personal info (birthdays, pet names)
* Reuse passwords across sites
* Share passwords with anyone`
			},
		},
		{
			id:       "phishing",
			keywords: []string{"phishing", "suspicious email", "fake email", "scam email", "fishing", "click link", "verify account", "urgent action", "email scam"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Phishing Incident Response Protocol**

**Containment:**
1. Block sender domain at email gateway
2. Quarantine similar messages organization-wide
3. Identify all recipients who received the email

**Remediation:**
4. Force password reset for anyone who clicked
5. Scan affected endpoints for malware
6. Submit malicious URLs to blocklists

**Analysis:**
• Extract IOCs (URLs, domains, file hashes)
• Check threat intel feeds for campaign attribution`
				}
				return `**Phishing Email Defense**

**Warning Signs:**
• Urgent language ("Act now!", "Account suspended!")
• Sender address looks wrong (e.g., support@amaz0n.com)
• Generic greeting ("Dear Customer")
• Suspicious links (hover to check before clicking)

**If You Receive a Suspicious Email:**
1. DO NOT click any links or attachments
2. Report it via Submit Report
3. Delete the email

When in doubt, contact IT directly!`
			},
		},
		{
			id:       "social_engineering",
			keywords: []string{"social engineering", "manipulated", "tricked", "pretexting", "impersonation", "pretending to be", "caller claimed", "vishing", "smishing"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Social Engineering Defense (Security Team)**

**Attack Vectors:**
• Phone (Vishing) - Fake IT support calls
• SMS (Smishing) - Text messages with links
• In-person - Tailgating, impersonation
• Email - Pretexting, authority exploitation

**Countermeasures:**
• Implement callback verification procedures
• Train staff on verification protocols
• Create code words for sensitive requests
• Physical access badges with photo ID`
				}
				return `**Protecting Yourself from Social Engineering**

Social engineering tricks people into revealing information.

**Red Flags:**
• Someone asks for your password (IT never will!)
• Pressure to act quickly or secretly
• Requests to bypass normal procedures
• Appeals to authority or fear

**Always:**
* Verify caller identity through official channels
* Take time to think - urgency is a manipulation tactic
* Report suspicious approaches to IT`
			},
		},
		{
			id:       "malware",
			keywords: []string{"malware", "virus", "infected", "trojan", "worm", "spyware", "adware", "popup", "slow computer", "strange behavior"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Malware Incident Response**

**Immediate Containment:**
1. Isolate endpoint from network (VLAN/unplug)
2. Preserve volatile memory before shutdown
3. Create disk image for forensics

**Analysis:**
4. Identify malware family and IOCs
5. Scan network for lateral movement
6. Check C2 communication in firewall logs

**Recovery:**
• Reimage from known-good gold master
• Reset all credentials used on that system
• Monitor for persistence mechanisms`
				}
				return `**Malware Warning Signs & Response**

**Signs of Infection:**
• Computer running unusually slow
• Unexpected popups or ads
• Programs opening/closing on their own
• Files missing or encrypted

**If You Suspect Malware:**
1. DISCONNECT from WiFi/network immediately
2. DON'T log into any accounts
3. SHUT DOWN the device
4. BRING it to IT Support (Room 304)

Note: Don't try to fix it yourself - you might spread it!`
			},
		},
		{
			id:       "ransomware",
			keywords: []string{"ransomware", "files encrypted", "bitcoin", "ransom", "locked files", "decrypt", "pay", "hostage"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Ransomware Incident Response**

**CRITICAL - Do NOT:**
* Pay the ransom
* Negotiate with attackers
* Reboot infected systems

**Immediate Actions:**
1. Isolate ALL potentially affected systems
2. Disable network shares and mapped drives
3. Preserve ransom note and encrypted samples
4. Check No More Ransom project for decryptors
5. Activate incident response team
6. Consider law enforcement notification

**Recovery:**
• Restore from offline/air-gapped backups
• Validate backup integrity before restore`
				}
				return `**Ransomware - What To Do**

If you see a message demanding payment to unlock your files:

1. **DO NOT PAY** - Payment encourages attackers
2. **DISCONNECT** from network immediately
3. **DO NOT** turn off the computer
4. **CALL IT** immediately: Extension 5555
5. **TAKE A PHOTO** of the ransom message

IT may be able to recover your files from backups.`
			},
		},
		{
			id:       "suspicious_links",
			keywords: []string{"suspicious link", "clicked link", "strange url", "unknown website", "redirect", "shortened link", "bit.ly", "clicked on"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Suspicious Link Investigation**

**Analysis Steps:**
1. Extract full URL (expand shorteners safely)
2. Check against threat intel (VirusTotal, URLVoid)
3. Analyze in sandbox environment
4. Review DNS/WHOIS registration

**If Clicked:**
• Capture browser history and cache
• Run endpoint scan for downloads
• Check for credential harvesting pages
• Force password reset if login page detected`
				}
				return `**Clicked a Suspicious Link?**

**Immediate Steps:**
1. Close the browser tab
2. Run your antivirus scan
3. Change passwords for any accounts you've logged into
4. Report the incident to IT

**For Future:**
• Hover over links to see the real URL
• Don't trust shortened links from unknown sources
• When in doubt, navigate directly to the website`
			},
		},
		{
			id:       "public_wifi",
			keywords: []string{"public wifi", "free wifi", "coffee shop", "hotel wifi", "airport wifi", "open network", "unsecured network", "wifi security"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Public WiFi Security Policy**

**Enterprise Controls:**
• Enforce always-on VPN for remote workers
• Deploy certificate-based authentication
• Enable network access control
• Configure firewall for public network profile

**Monitoring:**
• Alert on connections from known risky networks
• Track VPN usage compliance`
				}
				return `**Staying Safe on Public WiFi**

**Risks:**
• Attackers can intercept your data
• Fake "Free WiFi" networks (Evil Twin attacks)
• Session hijacking

**Protection:**
* Use the university VPN for all connections
* Only visit HTTPS websites
* Disable auto-connect to WiFi networks
* Turn off WiFi when not in use

* Never access banking or sensitive accounts on public WiFi`
			},
		},
		{
			id:       "lost_device",
			keywords: []string{"lost device", "stolen laptop", "lost phone", "missing device", "stolen phone", "lost computer", "device missing", "can't find"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Lost/Stolen Device Response Protocol**

**Immediate Actions:**
1. Attempt remote locate/wipe via MDM
2. Disable device certificates and tokens
3. Reset all credentials associated with device
4. Revoke VPN and email access
5. Report to law enforcement if stolen

**Data Assessment:**
• Was disk encryption enabled?
• What data was accessible?
• Determine breach notification requirements`
				}
				return `**Lost or Stolen Device - Act Fast!**

**Immediately:**
1. Report to IT Security: Extension 5555
2. Change your university password
3. Change passwords for any accounts on the device
4. If personal device: Use Find My iPhone/Android
5. If stolen: File a police report

**IT Can Help:**
• Remotely wipe university data
• Revoke access to university systems`
			},
		},
		{
			id:       "data_leak",
			keywords: []string{"data leak", "data breach", "sensitive information", "exposed data", "personal information", "pii", "confidential", "accidentally sent", "wrong recipient"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Data Leak/Breach Response**

**Classification:**
• Determine data types involved (PII, PHI, financial)
• Estimate number of affected individuals
• Identify exposure duration

**Containment:**
1. Remove exposed data from public access
2. Preserve evidence for investigation
3. Document all remediation actions

**Compliance:**
• Assess regulatory notification requirements
• Prepare breach notification if required
• Engage legal counsel`
				}
				return `**Data Exposure - What To Do**

**If You Accidentally Shared Sensitive Data:**
1. Report immediately to your supervisor
2. Contact IT Security
3. Document what was shared and with whom
4. Don't try to cover it up - quick reporting helps!

**Preventing Data Exposure:**
• Double-check recipients before sending
• Use encryption for sensitive files
• Don't store sensitive data on personal devices`
			},
		},
		{
			id:       "two_factor",
			keywords: []string{"two factor", "2fa", "mfa", "multi-factor", "authenticator", "verification code", "otp", "one-time password", "authentication app"},
			respond: func(privileged bool) string {
				if privileged {
					return `**MFA Implementation Guidelines**

**Recommended Methods (Priority Order):**
1. FIDO2/WebAuthn hardware keys
2. Authenticator apps (TOTP)
3. Push notifications
4. SMS (least secure, last resort)

**Rollout Best Practices:**
• Phase deployment by user group
• Require backup codes enrollment
• Monitor for MFA fatigue attacks
• Implement number matching for push notifications`
				}
				return `**Two-Factor Authentication (2FA)**

2FA adds a second layer of security beyond your password.

**How to Set Up:**
1. Go to your account security settings
2. Select "Enable Two-Factor Authentication"
3. Use an authenticator app (Microsoft/Google Authenticator)
4. Save your backup codes securely

**Benefits:**
* Even if someone gets your password, they can't log in
* You're notified of unauthorized login attempts`
			},
		},
		{
			id:       "suspicious_login",
			keywords: []string{"suspicious login", "unknown login", "login from", "didn't log in", "someone logged in", "unfamiliar location", "login alert", "access from"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Suspicious Login Investigation**

**Analysis Steps:**
1. Review authentication logs for the account
2. Correlate IP/geolocation with user's normal patterns
3. Check for impossible travel scenarios
4. Review device fingerprint/user agent

**If Confirmed Unauthorized:**
• Terminate all active sessions
• Force credential reset
• Enable heightened monitoring
• Check for mailbox rules or account changes`
				}
				return `**Suspicious Login Alert?**

**If You Didn't Log In:**
1. Change your password immediately
2. Enable 2FA if not already active
3. Check for unfamiliar devices in your account
4. Report to IT Security

**If It Was You:**
• Verify location matches where you were
• VPN usage can show different locations
• Mobile data vs WiFi may show different IPs`
			},
		},
		{
			id:       "email_spoofing",
			keywords: []string{"email spoofing", "fake sender", "pretending email", "forged email", "impersonating email", "from boss", "ceo fraud", "bec"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Email Spoofing/BEC Response**

**Technical Verification:**
• Check email headers (SPF, DKIM, DMARC)
• Analyze Reply-To vs From address
• Review sending IP against domain records

**If BEC Attempt:**
• Alert finance department immediately
• If funds transferred: Contact bank within 24hrs
• Preserve all evidence for law enforcement
• Report to IC3.gov`
				}
				return `**Email Spoofing - Fake Sender Emails**

Attackers can make emails appear to come from trusted people.

**Warning Signs:**
• Unusual requests for money or gift cards
• CEO/boss asking you to bypass procedures
• Pressure to keep request confidential
• Email address slightly different than normal

**Always:**
* Verify unusual requests by phone or in person
* Check the actual email address, not just display name
* Report suspicious emails to IT`
			},
		},
		{
			id:       "insider_threat",
			keywords: []string{"insider threat", "employee steal", "internal threat", "coworker suspicious", "stealing data", "disgruntled", "termination", "leaving employee"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Insider Threat Indicators & Response**

**Warning Signs:**
• Unusual data access patterns
• Large file downloads/transfers
• Access during odd hours
• Bypassing security controls
• Signs of disgruntlement

**Response:**
1. Coordinate with HR and Legal
2. Preserve evidence without alerting subject
3. Review access logs and DLP alerts
4. Prepare for access revocation if needed`
				}
				return `**Reporting Security Concerns About Others**

If you notice concerning behavior, report it confidentially:

**Contact:**
• IT Security: security@veritas.edu
• HR: hr@veritas.edu
• Anonymous hotline: 1-800-XXX-XXXX

**What to Report:**
• Unusual access to sensitive areas or data
• Attempts to bypass security procedures
• Sharing credentials or access cards

Your identity will be protected.`
			},
		},
		{
			id:       "backup",
			keywords: []string{"backup", "restore", "recovery", "lost files", "deleted files", "recover data", "backup data", "save files"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Backup & Recovery Management**

**Backup Strategy (3-2-1 Rule):**
• 3 copies of data
• 2 different storage types
• 1 offsite/air-gapped copy

**Recovery Testing:**
• Monthly restore tests
• Document RTO/RPO for critical systems
• Maintain offline recovery documentation
• Test full disaster recovery annually`
				}
				return `**Protecting Your Data with Backups**

**University Resources:**
• OneDrive: Automatically backs up Desktop & Documents
• Network drives: Backed up nightly
• Request restore: Contact IT Help Desk

**Best Practices:**
* Save important files to OneDrive or network drives
* Don't rely solely on local storage
* Version history protects against accidental changes`
			},
		},
		{
			id:       "identity_theft",
			keywords: []string{"identity theft", "identity stolen", "someone pretending to be me", "fraud", "credit", "ssn", "social security"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Identity Theft Response (Staff Member)**

**If Student/Staff Affected:**
1. Document all reported instances
2. Check for unauthorized system access
3. Coordinate with relevant departments
4. Assist with account recovery

**Resources:**
• IdentityTheft.gov for reporting
• Credit freeze guidance`
				}
				return `**Identity Theft - Immediate Steps**

**If Your Identity Is Stolen:**
1. Place a fraud alert on your credit reports
2. Report to IdentityTheft.gov
3. File a police report
4. Close fraudulent accounts
5. Change passwords for ALL accounts

**University Specific:**
• Report to IT Security for account protection
• Contact financial aid if student records affected`
			},
		},
		{
			id:       "browser_security",
			keywords: []string{"browser", "extension", "plugin", "popup", "certificate", "not secure", "https", "browser hijack"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Browser Security Standards**

**Enterprise Policy:**
• Approve extensions via managed browser
• Block known malicious extensions
• Enforce HTTPS-only mode
• Deploy certificate transparency

**Monitoring:**
• Log extension installations
• Alert on unauthorized plugins`
				}
				return `**Browser Security Tips**

**Keep Your Browser Safe:**
* Keep browser updated
* Only install extensions from official stores
* Look for HTTPS (padlock icon) on sensitive sites
* Clear cookies and cache regularly

**Warning Signs:**
• Homepage changed unexpectedly
• New toolbars you didn't install
• Lots of popup ads

Contact IT if your browser behaves strangely.`
			},
		},
		{
			id:       "file_sharing",
			keywords: []string{"file sharing", "share files", "send files", "secure transfer", "large file", "dropbox", "google drive", "onedrive"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Secure File Sharing Policy**

**Approved Methods:**
• University OneDrive/SharePoint
• Approved secure file transfer (SFTP)
• Encrypted email for small files

**Prohibited:**
• Personal cloud storage for university data
• USB drives for sensitive data
• Unencrypted FTP

**DLP Integration:**
• Classify documents before sharing
• Apply expiration to shared links`
				}
				return `**Sharing Files Securely**

**Use University Tools:**
• OneDrive: Best for internal sharing
• SharePoint: For team collaboration
• Encrypt sensitive documents

**Don't:**
* Email sensitive files unencrypted
* Use personal Dropbox/Google Drive for work
* Share links publicly unless necessary

Set expiration dates on shared links!`
			},
		},
		{
			id:       "safe_browsing",
			keywords: []string{"safe browsing", "dangerous website", "blocked site", "download file", "is this safe", "trusted website", "legitimate"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Web Filtering & Safe Browsing**

**Controls:**
• DNS filtering for malicious domains
• Category-based web filtering
• SSL inspection for encrypted threats
• Sandboxing for unknown downloads

**Response to Block Bypasses:**
• Investigate circumvention attempts
• Legitimate exceptions via request form`
				}
				return `**Safe Web Browsing Tips**

**Before Downloading:**
• Only download from official sources
• Check file extension (beware .exe from emails)
• Scan downloads with antivirus

**Identifying Safe Sites:**
* HTTPS padlock icon
* Correct spelling of domain
* No excessive popups
* Privacy policy available

When in doubt, don't click!`
			},
		},
		{
			id:       "vpn",
			keywords: []string{"vpn", "remote access", "work from home", "connect remotely", "virtual private network", "tunnel"},
			respond: func(privileged bool) string {
				if privileged {
					return `**VPN Security Configuration**

**Best Practices:**
• Split tunnel only for trusted traffic
• Enforce MFA for VPN authentication
• Monitor for anomalous connection patterns
• Set session timeouts
• Log all VPN connections

**Compliance:**
• Ensure endpoint compliance before connection
• Require updated antivirus`
				}
				return `**Using the University VPN**

**When to Use VPN:**
• Accessing university resources remotely
• Working from public WiFi
• Accessing sensitive systems from home

**How to Connect:**
1. Download VPN client from IT portal
2. Enter your university credentials
3. Complete 2FA verification
4. You're connected!

Contact IT Help Desk for VPN setup assistance.`
			},
		},
		{
			id:       "updates",
			keywords: []string{"update", "patch", "outdated", "vulnerable", "software update", "windows update", "upgrade"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Patch Management Protocol**

**Critical Patches:**
• Deploy within 24-48 hours
• Test in staging before production
• Emergency bypass for zero-days

**Regular Patching:**
• Monthly patch cycles
• Compliance reporting
• Exception tracking for legacy systems`
				}
				return `**Keeping Software Updated**

Updates fix security vulnerabilities!

**Best Practices:**
* Enable automatic updates
* Restart when updates require it
* Update all software, not just Windows
* Update mobile apps too

**University Computers:**
Updates are managed automatically. Please don't postpone restarts for more than a day.`
			},
		},
		{
			id:       "physical_security",
			keywords: []string{"physical security", "tailgating", "badge", "locked door", "stranger", "unauthorized person", "secure area"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Physical Security Protocol**

**Access Control:**
• Badge-based entry with audit logging
• Visitor management system
• CCTV coverage of entry points

**Incident Response:**
• Badge loss: Immediate deactivation
• Tailgating: Report and review footage
• Suspicious persons: Contact campus security`
				}
				return `**Physical Security Reminders**

**Protect Your Workspace:**
* Always badge in - don't hold doors for strangers
* Lock your computer when stepping away
* Secure sensitive documents in drawers
* Report lost badges immediately

**See Something Suspicious?**
Contact Campus Security: 555-SAFE`
			},
		},
		{
			id:       "incident_reporting",
			keywords: []string{"report incident", "how to report", "where to report", "security incident", "submit report", "notify security", "escalate"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Incident Reporting & Escalation**

**Severity Classification:**
• Critical: Active ongoing attack
• High: Confirmed compromise
• Medium: Suspicious activity
• Low: Policy violation

**Escalation Matrix:**
• Critical: CISO + IT Director immediately
• High: Security lead within 1 hour
• Medium/Low: Normal ticket queue`
				}
				return `**How to Report Security Incidents**

**Use the Submit Report Feature:**
1. Click "Submit Report" in the navigation
2. Select the incident type
3. Describe what happened
4. Attach any screenshots or evidence
5. Submit!

**For Emergencies:**
Call IT Security immediately: Extension 5555

Reports can be anonymous if you prefer.`
			},
		},
		{
			id:       "security_awareness",
			keywords: []string{"security training", "awareness", "best practices", "tips", "how to stay safe", "security basics", "learn security"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Security Awareness Program**

**Training Components:**
• Annual mandatory training
• Phishing simulations
• Role-based specialized training
• New hire security onboarding

**Metrics:**
• Track phishing click rates
• Measure reporting rates
• Compliance tracking`
				}
				return `**Security Awareness Resources**

**Quick Tips:**
* Use strong, unique passwords
* Enable two-factor authentication
* Be suspicious of unexpected emails
* Keep devices updated
* Back up important files

**Training:**
Complete your annual security training in the Learning Portal.`
			},
		},
		{
			id:       "mobile_security",
			keywords: []string{"mobile", "phone security", "smartphone", "tablet", "byod", "personal device", "mobile app"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Mobile Device Management (MDM)**

**BYOD Policy:**
• Container-based data separation
• Remote wipe capability required
• Minimum OS version requirements
• App whitelisting for work data access

**Security Enforcement:**
• PIN/biometric lock required
• Encryption mandatory
• Jailbroken devices blocked`
				}
				return `**Mobile Device Security**

**Protect Your Phone:**
* Use PIN, fingerprint, or face unlock
* Keep your phone OS updated
* Only install apps from official stores
* Enable Find My Device feature
* Be careful with app permissions

**University Email on Phone:**
Use the Outlook app with your university credentials.`
			},
		},
		{
			id:       "encryption",
			keywords: []string{"encryption", "encrypt", "encrypted", "decrypt", "sensitive data", "protect files", "bitlocker", "secure storage"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Encryption Standards**

**At Rest:**
• Full disk encryption (BitLocker/FileVault)
• Database encryption for sensitive data
• Key management via HSM

**In Transit:**
• TLS 1.2+ for all connections
• Certificate management
• Disable legacy protocols`
				}
				return `**Understanding Encryption**

Encryption scrambles data so only authorized people can read it.

**University Computers:**
* BitLocker is enabled automatically
* Your files are protected if laptop is lost

**Protecting Sensitive Files:**
• Use OneDrive (encrypted by default)
• Password-protect sensitive documents
• Use encrypted email for confidential info`
			},
		},
		{
			id:       "account_lockout",
			keywords: []string{"locked out", "can't login", "account locked", "too many attempts", "forgot password", "reset password", "unlock account"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Account Lockout Management**

**Lockout Policy:**
• 5 failed attempts = 15 minute lockout
• Auto-unlock after timeout
• Admin can manually unlock

**Before Unlocking:**
• Verify user identity
• Check for brute force attack patterns
• Review source IPs of failed attempts`
				}
				return `**Account Locked Out?**

**Self-Service Reset:**
1. Go to password.veritas.edu
2. Click "Forgot Password"
3. Verify with your recovery email/phone
4. Create a new password

**Still Locked Out?**
Contact IT Help Desk with your student/staff ID.

Note: Accounts auto-unlock after 15 minutes.`
			},
		},
		{
			id:       "secure_communication",
			keywords: []string{"secure communication", "private message", "encrypted chat", "confidential communication", "teams", "zoom", "meeting security"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Secure Communication Guidelines**

**Approved Platforms:**
• Microsoft Teams (with DLP)
• Encrypted email (sensitivity labels)
• Zoom with waiting rooms

**Meeting Security:**
• Enable waiting rooms
• Use meeting passwords
• Lock meetings after start
• Control screen sharing permissions`
				}
				return `**Communicating Securely**

**For Sensitive Discussions:**
* Use Microsoft Teams or university email
* Mark emails as "Confidential" when needed
* Don't discuss sensitive info on personal apps

**Video Meetings:**
• Use meeting passwords
• Don't share meeting links publicly
• Be aware of your background`
			},
		},
		{
			id:       "usb_security",
			keywords: []string{"usb", "flash drive", "thumb drive", "external drive", "found usb", "unknown usb", "usb stick"},
			respond: func(privileged bool) string {
				if privileged {
					return `**USB Device Security Policy**

**Controls:**
• Device control software deployed
• Only encrypted USB drives approved
• Auto-scan on connection
• Block unregistered devices

**Found USB Protocol:**
• Treat as potentially malicious
• Analyze in isolated sandbox
• Never plug into production systems`
				}
				return `**USB Drive Safety**

**Found a USB Drive?**
Note: NEVER plug in unknown USB drives!
They may contain malware that runs automatically.

**Turn it in to IT Security.**

**Using USB Drives:**
• Only use university-approved drives
• Scan drives before opening files
• Don't store sensitive data on USB
• Use cloud storage instead when possible`
			},
		},
		{
			id:       "remote_work",
			keywords: []string{"remote work", "work from home", "wfh", "home office", "remote security", "working remotely", "hybrid work"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Remote Work Security Framework**

**Technical Controls:**
• Always-on VPN enforcement
• Endpoint detection and response (EDR)
• Cloud access security broker (CASB)
• Zero-trust network access

**Policy:**
• Home network security requirements
• Physical privacy guidelines
• Approved device requirements`
				}
				return `**Secure Remote Work**

**Home Office Security:**
* Use the VPN when accessing university systems
* Secure your home WiFi with a strong password
* Lock your screen when away
* Don't let family use work devices
* Protect sensitive documents from view

**Video Calls:**
Be mindful of what's visible in your background!`
			},
		},
		{
			id:       "zero_day",
			keywords: []string{"zero day", "zero-day", "new vulnerability", "unpatched", "emerging threat", "latest attack"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Zero-Day Response Protocol**

**Upon Discovery:**
1. Assess exposure in environment
2. Implement temporary mitigations
3. Monitor for exploitation attempts
4. Track vendor patch availability

**Communication:**
• Alert SOC and IT leadership
• Prepare user communication if needed
• Document decisions and timeline`
				}
				return `**New Security Threats**

Zero-day attacks exploit unknown vulnerabilities.

**How IT Protects You:**
• 24/7 threat monitoring
• Rapid patch deployment
• Network-level protection

**What You Can Do:**
* Keep your software updated
* Report anything unusual immediately
* Follow security alerts from IT`
			},
		},
		{
			id:       "social_media",
			keywords: []string{"social media", "facebook", "twitter", "linkedin", "instagram", "posting", "oversharing", "privacy settings"},
			respond: func(privileged bool) string {
				if privileged {
					return `**Social Media Security Policy**

**Organizational Accounts:**
• MFA required for all official accounts
• Shared credential management via vault
• Approval process for posting

**Employee Guidelines:**
• Don't post internal information
• Avoid location tagging at work
• Watch for social engineering via DMs`
				}
				return `**Social Media Safety**

**Privacy Settings:**
* Review who can see your posts
* Limit personal info in bios
* Be careful with location sharing

**Security Tips:**
• Don't post work-related info
• Beware of friend requests from strangers
• Use unique passwords for each platform
• Enable 2FA on all social accounts`
			},
		},
	}
}
